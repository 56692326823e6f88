// Package roster implements the pure roster transition logic. Every function
// is a deterministic function of the party snapshot, the signal, and the
// actor; no I/O, no timers. Callers are responsible for holding the party's
// exclusive access while applying a transition.
package roster

import (
	"time"

	"github.com/yoBruxo/PTbotKND/internal/model"
)

// JoinStatus is the result of a join signal
type JoinStatus string

const (
	JoinApplied   JoinStatus = "applied"
	JoinNoOp      JoinStatus = "noop"       // actor already holds the role
	JoinRoleFull  JoinStatus = "role_full"  // target role at capacity
	JoinPartyFull JoinStatus = "party_full" // new join would exceed the total ceiling
	JoinClosed    JoinStatus = "party_closed"
)

// JoinResult describes the outcome of a join signal. PreviousRole is set when
// the join was a role switch, for notification phrasing.
type JoinResult struct {
	Status       JoinStatus
	PreviousRole model.Role
	Switched     bool
}

// Join applies a JoinRole signal to the party.
//
// A switch (actor already occupies a different role) moves the actor
// atomically and is checked against the target role's capacity only: total
// occupancy does not change on a switch, so the party-wide ceiling applies
// only to genuinely new joins.
func Join(p *model.Party, actor model.UserID, role model.Role) JoinResult {
	if p.IsClosed() {
		return JoinResult{Status: JoinClosed}
	}

	current, inParty := p.RoleOf(actor)
	if inParty && current == role {
		return JoinResult{Status: JoinNoOp}
	}

	if len(p.Roster[role]) >= role.Capacity() {
		return JoinResult{Status: JoinRoleFull}
	}

	if !inParty && p.TotalOccupancy() >= model.MaxPartySize {
		return JoinResult{Status: JoinPartyFull}
	}

	if inParty {
		removeFromRole(p, current, actor)
	}
	p.Roster[role] = append(p.Roster[role], actor)

	return JoinResult{
		Status:       JoinApplied,
		PreviousRole: current,
		Switched:     inParty,
	}
}

// LeaveStatus is the result of a leave signal
type LeaveStatus string

const (
	LeaveApplied LeaveStatus = "applied"
	// LeaveNotApplicable means the actor did not occupy the role, or the
	// party is closed and its roster immutable. A benign no-op either way.
	LeaveNotApplicable LeaveStatus = "not_applicable"
)

// Leave applies a LeaveRole signal. This only ever fires from a withdrawn
// reaction, so an actor missing from the role set is not an error.
func Leave(p *model.Party, actor model.UserID, role model.Role) LeaveStatus {
	if p.IsClosed() {
		return LeaveNotApplicable
	}
	for _, uid := range p.Roster[role] {
		if uid == actor {
			removeFromRole(p, role, actor)
			return LeaveApplied
		}
	}
	return LeaveNotApplicable
}

// CloseStatus is the result of a close signal
type CloseStatus string

const (
	CloseApplied CloseStatus = "closed"
	// CloseAlreadyClosed is a no-op rejection of a redundant close, not an error
	CloseAlreadyClosed CloseStatus = "already_closed"
)

// Close transitions the party Open -> Closed. Authorization is gated by the
// caller before this signal is applied; once here the transition is
// unconditional, independent of roster contents.
func Close(p *model.Party, closedBy model.UserID, reason model.CloseReason, now time.Time) CloseStatus {
	if p.IsClosed() {
		return CloseAlreadyClosed
	}
	p.Status = model.PartyStatusClosed
	p.ClosedAt = now
	p.ClosedBy = closedBy
	p.Reason = reason
	return CloseApplied
}

// Remove takes the target out of whichever role they occupy, returning that
// role. Used by administrative removal; closed parties are immutable.
func Remove(p *model.Party, target model.UserID) (model.Role, bool) {
	if p.IsClosed() {
		return "", false
	}
	role, ok := p.RoleOf(target)
	if !ok {
		return "", false
	}
	removeFromRole(p, role, target)
	return role, true
}

func removeFromRole(p *model.Party, role model.Role, user model.UserID) {
	members := p.Roster[role]
	for i, uid := range members {
		if uid == user {
			p.Roster[role] = append(members[:i], members[i+1:]...)
			return
		}
	}
}
