package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yoBruxo/PTbotKND/internal/model"
	"github.com/yoBruxo/PTbotKND/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) NextPartyID(ctx context.Context) (model.PartyID, error) {
	id, err := s.client.Incr(ctx, nextIDKey()).Result()
	if err != nil {
		return 0, err
	}
	return model.PartyID(id), nil
}

func (s *Storage) SaveParty(ctx context.Context, party *model.Party) error {
	data, err := json.Marshal(partyRecordFromModel(party))
	if err != nil {
		return err
	}
	// No TTL: closed parties stay queryable as an audit record
	return s.client.Set(ctx, partyKey(party.ID), data, 0).Err()
}

func (s *Storage) GetParty(ctx context.Context, id model.PartyID) (*model.Party, error) {
	data, err := s.client.Get(ctx, partyKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPartyNotFound
		}
		return nil, err
	}

	var rec partyRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec.toModel(), nil
}

func (s *Storage) ListParties(ctx context.Context) ([]*model.Party, error) {
	// Party ids are sequential from 1, so the counter bounds the key space
	maxID, err := s.client.Get(ctx, nextIDKey()).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []*model.Party{}, nil
		}
		return nil, err
	}

	parties := make([]*model.Party, 0, maxID)
	for id := model.PartyID(1); id <= model.PartyID(maxID); id++ {
		party, err := s.GetParty(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrPartyNotFound) {
				continue
			}
			return nil, err
		}
		parties = append(parties, party)
	}
	return parties, nil
}

// partyRecord is the JSON shape stored in Redis
type partyRecord struct {
	ID        int64                         `json:"id"`
	CreatorID string                        `json:"creator_id"`
	Status    string                        `json:"status"`
	Roster    map[model.Role][]model.UserID `json:"roster"`
	Canonical string                        `json:"canonical_view,omitempty"`
	Listings  []string                      `json:"listing_views,omitempty"`
	CreatedAt time.Time                     `json:"created_at"`
	ClosedAt  *time.Time                    `json:"closed_at,omitempty"`
	ClosedBy  string                        `json:"closed_by,omitempty"`
	Reason    string                        `json:"close_reason,omitempty"`
}

func partyRecordFromModel(p *model.Party) partyRecord {
	rec := partyRecord{
		ID:        int64(p.ID),
		CreatorID: string(p.CreatorID),
		Status:    string(p.Status),
		Roster:    p.Roster,
		Canonical: string(p.Views.Canonical),
		CreatedAt: p.CreatedAt,
		ClosedBy:  string(p.ClosedBy),
		Reason:    string(p.Reason),
	}
	for _, v := range p.Views.Listings {
		rec.Listings = append(rec.Listings, string(v))
	}
	if !p.ClosedAt.IsZero() {
		t := p.ClosedAt
		rec.ClosedAt = &t
	}
	return rec
}

func (rec partyRecord) toModel() *model.Party {
	p := &model.Party{
		ID:        model.PartyID(rec.ID),
		CreatorID: model.UserID(rec.CreatorID),
		Status:    model.PartyStatus(rec.Status),
		Roster:    rec.Roster,
		CreatedAt: rec.CreatedAt,
		ClosedBy:  model.UserID(rec.ClosedBy),
		Reason:    model.CloseReason(rec.Reason),
	}
	if p.Roster == nil {
		p.Roster = make(map[model.Role][]model.UserID)
	}
	for _, r := range model.Roles() {
		if p.Roster[r] == nil {
			p.Roster[r] = []model.UserID{}
		}
	}
	p.Views.Canonical = model.ViewID(rec.Canonical)
	for _, v := range rec.Listings {
		p.Views.Listings = append(p.Views.Listings, model.ViewID(v))
	}
	if rec.ClosedAt != nil {
		p.ClosedAt = *rec.ClosedAt
	}
	return p
}
