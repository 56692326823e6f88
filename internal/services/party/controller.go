package party

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/yoBruxo/PTbotKND/internal/dependencies/clock"
	"github.com/yoBruxo/PTbotKND/internal/events"
	"github.com/yoBruxo/PTbotKND/internal/metrics"
	"github.com/yoBruxo/PTbotKND/internal/model"
	"github.com/yoBruxo/PTbotKND/internal/registry"
	"github.com/yoBruxo/PTbotKND/internal/roster"
)

// Outcome classifies the result of a request. All outcomes are
// recoverable-by-design results of validation, never faults.
type Outcome string

const (
	OutcomeApplied       Outcome = "applied"
	OutcomeNoOp          Outcome = "noop"
	OutcomeRoleFull      Outcome = "role_full"
	OutcomePartyFull     Outcome = "party_full"
	OutcomePartyClosed   Outcome = "party_closed"
	OutcomeNotFound      Outcome = "not_found"
	OutcomeClosed        Outcome = "closed"
	OutcomeUnauthorized  Outcome = "unauthorized"
	OutcomeAlreadyClosed Outcome = "already_closed"
	OutcomeRemoved       Outcome = "removed"
	OutcomeNotPresent    Outcome = "not_present"
	OutcomeNotApplicable Outcome = "not_applicable"
)

// JoinResult is the outcome of a join request. PreviousRole is set when the
// join was a role switch.
type JoinResult struct {
	Outcome      Outcome
	PreviousRole model.Role
	Switched     bool
}

// RemoveResult is the outcome of an administrative removal
type RemoveResult struct {
	Outcome Outcome
	Role    model.Role
}

// ViewRef identifies which party a view belongs to and which kind it is
type ViewRef struct {
	PartyID model.PartyID
	Kind    model.ViewKind
}

// Controller coordinates party lifecycle: roster mutations, close
// authorization, view tracking, and the idle auto-close. Events are
// dispatched only after the party's exclusive access has been released, so a
// slow renderer never blocks a concurrent mutation.
type Controller struct {
	registry   *registry.Registry
	dispatcher *events.Dispatcher
	scheduler  *AutoCloseScheduler
	clock      clock.Clock
	logger     *slog.Logger
}

// NewController creates a controller with its auto-close scheduler
func NewController(
	reg *registry.Registry,
	dispatcher *events.Dispatcher,
	clk clock.Clock,
	autoCloseDelay time.Duration,
	logger *slog.Logger,
) *Controller {
	c := &Controller{
		registry:   reg,
		dispatcher: dispatcher,
		clock:      clk,
		logger:     logger.With(slog.String("component", "party")),
	}
	c.scheduler = NewAutoCloseScheduler(clk, autoCloseDelay, c.autoClose, logger)
	return c
}

// Shutdown cancels outstanding auto-close checks
func (c *Controller) Shutdown() {
	c.scheduler.Stop()
}

// CreateParty allocates a new open party and schedules its idle check
func (c *Controller) CreateParty(ctx context.Context, creator model.UserID) (*model.Party, error) {
	now := c.clock.Now()
	party, err := c.registry.Create(ctx, creator, now)
	if err != nil {
		return nil, err
	}

	metrics.PartiesCreated.Inc()
	metrics.OpenParties.Inc()
	c.scheduler.Schedule(party.ID)
	c.dispatcher.Publish(model.NewEvent(model.EventPartyCreated, party.ID, creator, now,
		model.PartyCreatedPayload{CreatorID: creator}))

	return party, nil
}

// GetParty returns a snapshot of the party
func (c *Controller) GetParty(ctx context.Context, id model.PartyID) (*model.Party, error) {
	return c.registry.Get(ctx, id)
}

// ListParties returns snapshots of all parties in creation order
func (c *Controller) ListParties(ctx context.Context) ([]*model.Party, error) {
	return c.registry.List(ctx)
}

// Counts returns open and total party counts for the status endpoint
func (c *Controller) Counts(ctx context.Context) (open int, total int, err error) {
	return c.registry.Counts(ctx)
}

// RequestJoin applies a JoinRole signal for the actor
func (c *Controller) RequestJoin(ctx context.Context, id model.PartyID, actor model.UserID, role model.Role) (JoinResult, error) {
	var res roster.JoinResult
	err := c.registry.WithPartyLocked(ctx, id, func(p *model.Party) error {
		res = roster.Join(p, actor, role)
		return nil
	})
	if errors.Is(err, model.ErrPartyNotFound) {
		return JoinResult{Outcome: OutcomeNotFound}, nil
	}
	if err != nil {
		return JoinResult{}, err
	}

	result := JoinResult{
		Outcome:      joinOutcome(res.Status),
		PreviousRole: res.PreviousRole,
		Switched:     res.Switched,
	}
	metrics.RosterRequests.WithLabelValues("join", string(result.Outcome)).Inc()

	if result.Outcome == OutcomeApplied {
		c.logger.Info("join applied",
			slog.Int64("party_id", int64(id)),
			slog.String("user_id", string(actor)),
			slog.String("role", string(role)),
			slog.Bool("switched", res.Switched))
		c.dispatcher.Publish(model.NewEvent(model.EventRosterChanged, id, actor, c.clock.Now(),
			model.RosterChangedPayload{
				UserID:       actor,
				Role:         role,
				PreviousRole: res.PreviousRole,
			}))
	}
	return result, nil
}

// RequestLeave applies a LeaveRole signal. This only fires from a withdrawn
// reaction, so an actor not in the role is a benign NotApplicable.
func (c *Controller) RequestLeave(ctx context.Context, id model.PartyID, actor model.UserID, role model.Role) (Outcome, error) {
	var status roster.LeaveStatus
	err := c.registry.WithPartyLocked(ctx, id, func(p *model.Party) error {
		status = roster.Leave(p, actor, role)
		return nil
	})
	if errors.Is(err, model.ErrPartyNotFound) {
		return OutcomeNotApplicable, nil
	}
	if err != nil {
		return "", err
	}

	outcome := OutcomeNotApplicable
	if status == roster.LeaveApplied {
		outcome = OutcomeApplied
	}
	metrics.RosterRequests.WithLabelValues("leave", string(outcome)).Inc()

	if outcome == OutcomeApplied {
		c.logger.Info("leave applied",
			slog.Int64("party_id", int64(id)),
			slog.String("user_id", string(actor)),
			slog.String("role", string(role)))
		c.dispatcher.Publish(model.NewEvent(model.EventRosterChanged, id, actor, c.clock.Now(),
			model.RosterChangedPayload{
				UserID: actor,
				Role:   role,
				Left:   true,
			}))
	}
	return outcome, nil
}

// RequestClose applies a manual CloseRequest, gated by the close policy
func (c *Controller) RequestClose(ctx context.Context, id model.PartyID, actor model.UserID, isPrivileged bool) (Outcome, error) {
	outcome := OutcomeClosed
	err := c.registry.WithPartyLocked(ctx, id, func(p *model.Party) error {
		if p.IsClosed() {
			outcome = OutcomeAlreadyClosed
			return nil
		}
		if !CanClose(p, actor, isPrivileged) {
			outcome = OutcomeUnauthorized
			return nil
		}
		roster.Close(p, actor, model.CloseReasonManual, c.clock.Now())
		return nil
	})
	if errors.Is(err, model.ErrPartyNotFound) {
		return OutcomeNotFound, nil
	}
	if err != nil {
		return "", err
	}

	metrics.RosterRequests.WithLabelValues("close", string(outcome)).Inc()

	if outcome == OutcomeClosed {
		metrics.OpenParties.Dec()
		c.scheduler.Cancel(id)
		c.logger.Info("party closed",
			slog.Int64("party_id", int64(id)),
			slog.String("closed_by", string(actor)))
		c.dispatcher.Publish(model.NewEvent(model.EventPartyClosed, id, actor, c.clock.Now(),
			model.PartyClosedPayload{ClosedBy: actor, Reason: model.CloseReasonManual}))
	}
	return outcome, nil
}

// RemovePlayer removes the target from whatever role they hold. Authorization
// is enforced by the surrounding command layer.
func (c *Controller) RemovePlayer(ctx context.Context, id model.PartyID, target model.UserID) (RemoveResult, error) {
	var removed model.Role
	var ok bool
	err := c.registry.WithPartyLocked(ctx, id, func(p *model.Party) error {
		removed, ok = roster.Remove(p, target)
		return nil
	})
	if errors.Is(err, model.ErrPartyNotFound) {
		return RemoveResult{Outcome: OutcomeNotFound}, nil
	}
	if err != nil {
		return RemoveResult{}, err
	}
	if !ok {
		metrics.RosterRequests.WithLabelValues("remove", string(OutcomeNotPresent)).Inc()
		return RemoveResult{Outcome: OutcomeNotPresent}, nil
	}

	metrics.RosterRequests.WithLabelValues("remove", string(OutcomeRemoved)).Inc()
	c.logger.Info("player removed",
		slog.Int64("party_id", int64(id)),
		slog.String("user_id", string(target)),
		slog.String("role", string(removed)))
	c.dispatcher.Publish(model.NewEvent(model.EventRosterChanged, id, target, c.clock.Now(),
		model.RosterChangedPayload{
			UserID: target,
			Role:   removed,
			Left:   true,
		}))
	return RemoveResult{Outcome: OutcomeRemoved, Role: removed}, nil
}

// SetCanonicalView records the view id of the party's creation render
func (c *Controller) SetCanonicalView(ctx context.Context, id model.PartyID, view model.ViewID) error {
	return c.registry.WithPartyLocked(ctx, id, func(p *model.Party) error {
		p.Views.Canonical = view
		return nil
	})
}

// ReplaceListingViews replaces the party's listing views wholesale, matching
// how listings are regenerated by deleting and re-posting
func (c *Controller) ReplaceListingViews(ctx context.Context, id model.PartyID, views []model.ViewID) error {
	return c.registry.WithPartyLocked(ctx, id, func(p *model.Party) error {
		p.Views.Listings = append([]model.ViewID{}, views...)
		return nil
	})
}

// ResolveView reports whether a view id belongs to a tracked party. This is
// how incoming reaction events are judged relevant.
func (c *Controller) ResolveView(ctx context.Context, view model.ViewID) (ViewRef, error) {
	parties, err := c.registry.List(ctx)
	if err != nil {
		return ViewRef{}, err
	}
	for _, p := range parties {
		if p.Views.Canonical == view {
			return ViewRef{PartyID: p.ID, Kind: model.ViewKindCanonical}, nil
		}
		for _, v := range p.Views.Listings {
			if v == view {
				return ViewRef{PartyID: p.ID, Kind: model.ViewKindListing}, nil
			}
		}
	}
	return ViewRef{}, model.ErrViewNotTracked
}

// autoClose is the scheduler's fire callback: close the party if it is still
// open and nobody ever joined. Bypasses the close policy (system-initiated).
func (c *Controller) autoClose(id model.PartyID) {
	ctx := context.Background()
	closed := false
	err := c.registry.WithPartyLocked(ctx, id, func(p *model.Party) error {
		if p.IsClosed() || p.TotalOccupancy() > 0 {
			return nil
		}
		roster.Close(p, "", model.CloseReasonAutoIdle, c.clock.Now())
		closed = true
		return nil
	})
	if err != nil {
		c.logger.Warn("auto-close check failed",
			slog.Int64("party_id", int64(id)),
			slog.String("error", err.Error()))
		return
	}
	if !closed {
		return
	}

	metrics.AutoCloses.Inc()
	metrics.OpenParties.Dec()
	c.logger.Info("party auto-closed for inactivity", slog.Int64("party_id", int64(id)))
	c.dispatcher.Publish(model.NewEvent(model.EventPartyClosed, id, "", c.clock.Now(),
		model.PartyClosedPayload{Reason: model.CloseReasonAutoIdle}))
}

func joinOutcome(s roster.JoinStatus) Outcome {
	switch s {
	case roster.JoinApplied:
		return OutcomeApplied
	case roster.JoinNoOp:
		return OutcomeNoOp
	case roster.JoinRoleFull:
		return OutcomeRoleFull
	case roster.JoinPartyFull:
		return OutcomePartyFull
	case roster.JoinClosed:
		return OutcomePartyClosed
	default:
		return OutcomeNoOp
	}
}
