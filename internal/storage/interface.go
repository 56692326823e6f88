package storage

import (
	"context"

	"github.com/yoBruxo/PTbotKND/internal/model"
)

// Storage defines the interface for party persistence. Implementations only
// need to be safe for concurrent access at the level of individual calls; the
// registry layers the per-party exclusive-access discipline on top.
type Storage interface {
	// NextPartyID allocates the next sequential party id. IDs are 1-based
	// and never reused.
	NextPartyID(ctx context.Context) (model.PartyID, error)

	// SaveParty persists a party snapshot
	SaveParty(ctx context.Context, party *model.Party) error

	// GetParty retrieves a party by id, or model.ErrPartyNotFound
	GetParty(ctx context.Context, id model.PartyID) (*model.Party, error)

	// ListParties returns all parties in creation order
	ListParties(ctx context.Context) ([]*model.Party, error)
}
