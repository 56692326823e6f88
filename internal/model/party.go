package model

import "time"

// PartyID is a sequential party identifier
type PartyID int64

// UserID identifies a player in the hosting platform
type UserID string

// ViewID identifies a rendered view of a party held by an external renderer
type ViewID string

// PartyStatus is the party lifecycle state
type PartyStatus string

const (
	PartyStatusOpen   PartyStatus = "open"
	PartyStatusClosed PartyStatus = "closed"
)

// CloseReason records why a party was closed
type CloseReason string

const (
	CloseReasonManual   CloseReason = "manual"
	CloseReasonAutoIdle CloseReason = "auto_idle"
)

// ViewKind distinguishes the canonical view from listing views
type ViewKind string

const (
	ViewKindCanonical ViewKind = "canonical"
	ViewKindListing   ViewKind = "listing"
)

// Views tracks the external renders of a party. The canonical view is the
// creation render signals arrive on; listings are secondary renders that are
// replaced wholesale when regenerated.
type Views struct {
	Canonical ViewID
	Listings  []ViewID
}

// All returns every tracked view id, canonical first
func (v Views) All() []ViewID {
	out := make([]ViewID, 0, 1+len(v.Listings))
	if v.Canonical != "" {
		out = append(out, v.Canonical)
	}
	return append(out, v.Listings...)
}

// Party is the state of one party. A user holds at most one role at a time.
// Once closed the roster is immutable and kept as an audit record.
type Party struct {
	ID        PartyID
	CreatorID UserID
	Status    PartyStatus
	Roster    map[Role][]UserID
	Views     Views
	CreatedAt time.Time
	ClosedAt  time.Time
	ClosedBy  UserID // empty when closed by the idle check
	Reason    CloseReason
}

// NewParty creates an open party with an empty roster
func NewParty(id PartyID, creator UserID, now time.Time) *Party {
	roster := make(map[Role][]UserID, len(Roles()))
	for _, r := range Roles() {
		roster[r] = []UserID{}
	}
	return &Party{
		ID:        id,
		CreatorID: creator,
		Status:    PartyStatusOpen,
		Roster:    roster,
		CreatedAt: now,
	}
}

// IsClosed reports whether the party has reached its terminal state
func (p *Party) IsClosed() bool {
	return p.Status == PartyStatusClosed
}

// RoleOf returns the role the user currently holds, if any. Join order within
// a role is preserved, so membership checks scan the slices directly.
func (p *Party) RoleOf(user UserID) (Role, bool) {
	for _, r := range Roles() {
		for _, uid := range p.Roster[r] {
			if uid == user {
				return r, true
			}
		}
	}
	return "", false
}

// TotalOccupancy returns the number of users across all roles
func (p *Party) TotalOccupancy() int {
	total := 0
	for _, members := range p.Roster {
		total += len(members)
	}
	return total
}

// Clone returns a deep copy, so storage can hand out snapshots without
// aliasing the stored roster or view slices
func (p *Party) Clone() *Party {
	cp := *p
	cp.Roster = make(map[Role][]UserID, len(p.Roster))
	for r, members := range p.Roster {
		cp.Roster[r] = append([]UserID{}, members...)
	}
	cp.Views.Listings = append([]ViewID{}, p.Views.Listings...)
	return &cp
}
