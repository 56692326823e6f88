package response

import (
	"time"

	"github.com/yoBruxo/PTbotKND/internal/model"
	"github.com/yoBruxo/PTbotKND/internal/services/party"
)

// RoleSlot represents one role's occupancy in API responses
type RoleSlot struct {
	Role     string   `json:"role"`
	Emoji    string   `json:"emoji"`
	Capacity int      `json:"capacity"`
	Members  []string `json:"members"`
}

// Party represents a party snapshot in API responses
type Party struct {
	ID             int64      `json:"id"`
	CreatorID      string     `json:"creator_id"`
	Status         string     `json:"status"`
	Roster         []RoleSlot `json:"roster"`
	TotalOccupancy int        `json:"total_occupancy"`
	MaxSize        int        `json:"max_size"`
	CanonicalView  string     `json:"canonical_view,omitempty"`
	ListingViews   []string   `json:"listing_views,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`
	ClosedBy       string     `json:"closed_by,omitempty"`
	CloseReason    string     `json:"close_reason,omitempty"`
}

// PartyFromModel converts a model.Party snapshot
func PartyFromModel(p *model.Party) Party {
	roster := make([]RoleSlot, 0, len(model.Roles()))
	for _, r := range model.Roles() {
		members := make([]string, 0, len(p.Roster[r]))
		for _, uid := range p.Roster[r] {
			members = append(members, string(uid))
		}
		roster = append(roster, RoleSlot{
			Role:     string(r),
			Emoji:    r.Emoji(),
			Capacity: r.Capacity(),
			Members:  members,
		})
	}

	out := Party{
		ID:             int64(p.ID),
		CreatorID:      string(p.CreatorID),
		Status:         string(p.Status),
		Roster:         roster,
		TotalOccupancy: p.TotalOccupancy(),
		MaxSize:        model.MaxPartySize,
		CanonicalView:  string(p.Views.Canonical),
		CreatedAt:      p.CreatedAt,
		ClosedBy:       string(p.ClosedBy),
		CloseReason:    string(p.Reason),
	}
	for _, v := range p.Views.Listings {
		out.ListingViews = append(out.ListingViews, string(v))
	}
	if !p.ClosedAt.IsZero() {
		t := p.ClosedAt
		out.ClosedAt = &t
	}
	return out
}

// PartyList is the response for the list endpoint
type PartyList struct {
	Parties []Party `json:"parties"`
}

// OutcomeResponse reports the outcome of a roster request
type OutcomeResponse struct {
	Outcome      string `json:"outcome"`
	PreviousRole string `json:"previous_role,omitempty"`
	Role         string `json:"role,omitempty"`
	Party        *Party `json:"party,omitempty"`
}

// JoinOutcome builds the response for a join request
func JoinOutcome(res party.JoinResult, p *model.Party) OutcomeResponse {
	out := OutcomeResponse{Outcome: string(res.Outcome)}
	if res.Switched {
		out.PreviousRole = string(res.PreviousRole)
	}
	if p != nil {
		snapshot := PartyFromModel(p)
		out.Party = &snapshot
	}
	return out
}

// Status is the body of the status endpoint, the process liveness summary
type Status struct {
	Status       string    `json:"status"`
	Uptime       string    `json:"uptime"`
	StartedAt    time.Time `json:"started_at"`
	OpenParties  int       `json:"parties_active"`
	TotalParties int       `json:"total_parties"`
}

// Health is the body of the health endpoint
type Health struct {
	Status string `json:"status"`
}
