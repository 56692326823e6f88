package model

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the type of event
type EventType string

const (
	EventPartyCreated  EventType = "party_created"
	EventRosterChanged EventType = "roster_changed"
	EventPartyClosed   EventType = "party_closed"
)

// Event is emitted after every committed mutation. Renderers re-render the
// canonical view and every tracked listing view for the party id; the core
// never touches rendering payloads.
type Event struct {
	ID        string
	Type      EventType
	Timestamp time.Time
	PartyID   PartyID
	ActorID   UserID // the user who triggered the mutation; empty for system actions
	Payload   any    // type-specific data
}

// NewEvent creates an event with a fresh id
func NewEvent(t EventType, partyID PartyID, actor UserID, now time.Time, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: now,
		PartyID:   partyID,
		ActorID:   actor,
		Payload:   payload,
	}
}

// PartyCreatedPayload contains data for party created events
type PartyCreatedPayload struct {
	CreatorID UserID
}

// RosterChangedPayload contains data for roster changed events
type RosterChangedPayload struct {
	UserID UserID
	Role   Role // the role joined or left; empty for administrative removal
	// PreviousRole is set when the change was a role switch, so the glue
	// layer can phrase "switched from X" instead of "joined"
	PreviousRole Role
	Left         bool
}

// PartyClosedPayload contains data for party closed events
type PartyClosedPayload struct {
	ClosedBy UserID // empty when closed by the idle check
	Reason   CloseReason
}
