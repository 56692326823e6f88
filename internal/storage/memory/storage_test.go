package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/yoBruxo/PTbotKND/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
	now     time.Time
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (s *StorageSuite) TestNextPartyIDIsSequential() {
	for want := model.PartyID(1); want <= 3; want++ {
		id, err := s.storage.NextPartyID(s.ctx)
		s.Require().NoError(err)
		s.Equal(want, id)
	}
}

func (s *StorageSuite) TestSaveAndGetParty() {
	p := model.NewParty(1, "creator", s.now)
	p.Roster[model.RoleHealer] = append(p.Roster[model.RoleHealer], "u1")

	s.Require().NoError(s.storage.SaveParty(s.ctx, p))

	got, err := s.storage.GetParty(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(p.ID, got.ID)
	s.Equal(p.CreatorID, got.CreatorID)
	s.Equal([]model.UserID{"u1"}, got.Roster[model.RoleHealer])
}

func (s *StorageSuite) TestGetUnknownParty() {
	_, err := s.storage.GetParty(s.ctx, 99)
	s.ErrorIs(err, model.ErrPartyNotFound)
}

func (s *StorageSuite) TestGetReturnsIndependentCopy() {
	p := model.NewParty(1, "creator", s.now)
	s.Require().NoError(s.storage.SaveParty(s.ctx, p))

	got, _ := s.storage.GetParty(s.ctx, 1)
	got.Roster[model.RoleMember] = append(got.Roster[model.RoleMember], "intruder")

	again, _ := s.storage.GetParty(s.ctx, 1)
	s.Empty(again.Roster[model.RoleMember])
}

func (s *StorageSuite) TestListPartiesCreationOrder() {
	for i := 3; i >= 1; i-- {
		s.Require().NoError(s.storage.SaveParty(s.ctx, model.NewParty(model.PartyID(i), "c", s.now)))
	}

	parties, err := s.storage.ListParties(s.ctx)
	s.Require().NoError(err)
	s.Len(parties, 3)
	for i, p := range parties {
		s.Equal(model.PartyID(i+1), p.ID)
	}
}
