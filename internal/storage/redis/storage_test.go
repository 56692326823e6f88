package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/yoBruxo/PTbotKND/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	mini, err := miniredis.Run()
	s.Require().NoError(err)
	s.mini = mini

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) TearDownTest() {
	_ = s.storage.Close()
	s.mini.Close()
}

func (s *StorageSuite) TestNextPartyIDIsSequential() {
	for want := model.PartyID(1); want <= 3; want++ {
		id, err := s.storage.NextPartyID(s.ctx)
		s.Require().NoError(err)
		s.Equal(want, id)
	}
}

func (s *StorageSuite) TestSaveAndGetPartyRoundTrip() {
	p := model.NewParty(1, "creator", s.now)
	p.Roster[model.RoleLeader] = append(p.Roster[model.RoleLeader], "u1")
	p.Roster[model.RoleMember] = append(p.Roster[model.RoleMember], "u2", "u3")
	p.Views.Canonical = "msg-1"
	p.Views.Listings = []model.ViewID{"msg-2", "msg-3"}

	s.Require().NoError(s.storage.SaveParty(s.ctx, p))

	got, err := s.storage.GetParty(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(p.ID, got.ID)
	s.Equal(model.UserID("creator"), got.CreatorID)
	s.Equal(model.PartyStatusOpen, got.Status)
	s.Equal([]model.UserID{"u1"}, got.Roster[model.RoleLeader])
	s.Equal([]model.UserID{"u2", "u3"}, got.Roster[model.RoleMember])
	s.Empty(got.Roster[model.RoleHealer])
	s.Equal(model.ViewID("msg-1"), got.Views.Canonical)
	s.Equal([]model.ViewID{"msg-2", "msg-3"}, got.Views.Listings)
	s.True(got.CreatedAt.Equal(s.now))
}

func (s *StorageSuite) TestClosedPartyRoundTrip() {
	p := model.NewParty(1, "creator", s.now)
	p.Status = model.PartyStatusClosed
	p.ClosedAt = s.now.Add(5 * time.Minute)
	p.ClosedBy = "creator"
	p.Reason = model.CloseReasonManual

	s.Require().NoError(s.storage.SaveParty(s.ctx, p))

	got, err := s.storage.GetParty(s.ctx, 1)
	s.Require().NoError(err)
	s.True(got.IsClosed())
	s.Equal(model.UserID("creator"), got.ClosedBy)
	s.Equal(model.CloseReasonManual, got.Reason)
	s.True(got.ClosedAt.Equal(s.now.Add(5 * time.Minute)))
}

func (s *StorageSuite) TestGetUnknownParty() {
	_, err := s.storage.GetParty(s.ctx, 99)
	s.ErrorIs(err, model.ErrPartyNotFound)
}

func (s *StorageSuite) TestListPartiesCreationOrder() {
	for i := 1; i <= 3; i++ {
		id, err := s.storage.NextPartyID(s.ctx)
		s.Require().NoError(err)
		s.Require().NoError(s.storage.SaveParty(s.ctx, model.NewParty(id, "c", s.now)))
	}

	parties, err := s.storage.ListParties(s.ctx)
	s.Require().NoError(err)
	s.Len(parties, 3)
	for i, p := range parties {
		s.Equal(model.PartyID(i+1), p.ID)
	}
}

func (s *StorageSuite) TestListPartiesEmpty() {
	parties, err := s.storage.ListParties(s.ctx)
	s.Require().NoError(err)
	s.Empty(parties)
}
