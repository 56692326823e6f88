// Package registry owns the party collection: id assignment, lookup, and the
// per-party exclusive-access discipline every mutation goes through.
package registry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/yoBruxo/PTbotKND/internal/model"
	"github.com/yoBruxo/PTbotKND/internal/storage"
)

// Registry is the single point of concurrent access control for parties.
// Mutations on different parties proceed independently; mutations on the same
// party are serialized by a per-id mutex. The registry's own mutex guards
// only the lock map, never a roster mutation.
type Registry struct {
	storage storage.Storage
	logger  *slog.Logger

	mu    sync.Mutex
	locks map[model.PartyID]*sync.Mutex
}

// New creates a registry over the given storage backend
func New(store storage.Storage, logger *slog.Logger) *Registry {
	return &Registry{
		storage: store,
		logger:  logger.With(slog.String("component", "registry")),
		locks:   make(map[model.PartyID]*sync.Mutex),
	}
}

// Create allocates the next id and inserts an empty open party
func (r *Registry) Create(ctx context.Context, creator model.UserID, now time.Time) (*model.Party, error) {
	id, err := r.storage.NextPartyID(ctx)
	if err != nil {
		return nil, err
	}

	party := model.NewParty(id, creator, now)
	if err := r.storage.SaveParty(ctx, party); err != nil {
		return nil, err
	}

	r.logger.Info("party created",
		slog.Int64("party_id", int64(id)),
		slog.String("creator_id", string(creator)))

	return party.Clone(), nil
}

// Get returns a snapshot of the party, or model.ErrPartyNotFound
func (r *Registry) Get(ctx context.Context, id model.PartyID) (*model.Party, error) {
	return r.storage.GetParty(ctx, id)
}

// List returns snapshots of all parties in creation order
func (r *Registry) List(ctx context.Context) ([]*model.Party, error) {
	return r.storage.ListParties(ctx)
}

// Counts returns the number of open parties and the total created
func (r *Registry) Counts(ctx context.Context) (open int, total int, err error) {
	parties, err := r.storage.ListParties(ctx)
	if err != nil {
		return 0, 0, err
	}
	for _, p := range parties {
		if !p.IsClosed() {
			open++
		}
	}
	return open, len(parties), nil
}

// WithPartyLocked is the sole mutation entry point. It runs fn against the
// party under that party's exclusive access and persists the result when fn
// succeeds. fn must not perform network I/O; notification and render side
// effects belong after the lock is released.
func (r *Registry) WithPartyLocked(ctx context.Context, id model.PartyID, fn func(p *model.Party) error) error {
	lock := r.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	party, err := r.storage.GetParty(ctx, id)
	if err != nil {
		return err
	}

	if err := fn(party); err != nil {
		return err
	}

	return r.storage.SaveParty(ctx, party)
}

func (r *Registry) lockFor(id model.PartyID) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[id] = lock
	}
	return lock
}
