package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/yoBruxo/PTbotKND/internal/model"
	"github.com/yoBruxo/PTbotKND/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	parties map[model.PartyID]*model.Party
	nextID  model.PartyID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		parties: make(map[model.PartyID]*model.Party),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) NextPartyID(ctx context.Context) (model.PartyID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID, nil
}

func (s *Storage) SaveParty(ctx context.Context, party *model.Party) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parties[party.ID] = party.Clone()
	return nil
}

func (s *Storage) GetParty(ctx context.Context, id model.PartyID) (*model.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	party, ok := s.parties[id]
	if !ok {
		return nil, model.ErrPartyNotFound
	}
	return party.Clone(), nil
}

func (s *Storage) ListParties(ctx context.Context) ([]*model.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	parties := make([]*model.Party, 0, len(s.parties))
	for _, p := range s.parties {
		parties = append(parties, p.Clone())
	}
	sort.Slice(parties, func(i, j int) bool {
		return parties[i].ID < parties[j].ID
	})
	return parties, nil
}
