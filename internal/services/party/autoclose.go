package party

import (
	"log/slog"
	"sync"
	"time"

	"github.com/yoBruxo/PTbotKND/internal/dependencies/clock"
	"github.com/yoBruxo/PTbotKND/internal/model"
)

// DefaultAutoCloseDelay is how long after creation the idle check fires
const DefaultAutoCloseDelay = 300 * time.Second

// AutoCloseScheduler owns one deferred idle check per party. Each party gets
// exactly one check, a fixed delay after creation; the check re-reads the
// roster at fire time, so intervening activity neither resets nor extends it.
// A party that gains a member and later fully empties is never auto-closed.
type AutoCloseScheduler struct {
	clock  clock.Clock
	delay  time.Duration
	fire   func(model.PartyID)
	logger *slog.Logger

	mu      sync.Mutex
	pending map[model.PartyID]*pendingCheck
	stopped bool
	wg      sync.WaitGroup
}

type pendingCheck struct {
	timer  clock.Timer
	cancel chan struct{}
}

// NewAutoCloseScheduler creates a scheduler invoking fire when a party's
// check comes due
func NewAutoCloseScheduler(clk clock.Clock, delay time.Duration, fire func(model.PartyID), logger *slog.Logger) *AutoCloseScheduler {
	if delay <= 0 {
		delay = DefaultAutoCloseDelay
	}
	return &AutoCloseScheduler{
		clock:   clk,
		delay:   delay,
		fire:    fire,
		logger:  logger.With(slog.String("component", "autoclose")),
		pending: make(map[model.PartyID]*pendingCheck),
	}
}

// Schedule registers the party's single idle check
func (s *AutoCloseScheduler) Schedule(id model.PartyID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if _, ok := s.pending[id]; ok {
		return
	}

	check := &pendingCheck{
		timer:  s.clock.NewTimer(s.delay),
		cancel: make(chan struct{}),
	}
	s.pending[id] = check

	s.wg.Add(1)
	go s.wait(id, check)
}

// Cancel withdraws the pending check, if any. Used when a party is closed
// before the check fires; the fire-time re-check makes this an optimization,
// not a correctness requirement.
func (s *AutoCloseScheduler) Cancel(id model.PartyID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(id)
}

// Stop cancels all pending checks and waits for their goroutines to exit
func (s *AutoCloseScheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	for id := range s.pending {
		s.cancelLocked(id)
	}
	s.mu.Unlock()
	s.wg.Wait()
	s.logger.Info("auto-close scheduler stopped")
}

// PendingCount returns the number of outstanding checks
func (s *AutoCloseScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *AutoCloseScheduler) cancelLocked(id model.PartyID) {
	check, ok := s.pending[id]
	if !ok {
		return
	}
	delete(s.pending, id)
	check.timer.Stop()
	close(check.cancel)
}

func (s *AutoCloseScheduler) wait(id model.PartyID, check *pendingCheck) {
	defer s.wg.Done()
	select {
	case <-check.timer.C():
		s.mu.Lock()
		// Cancel may have won the race after the timer fired
		if _, ok := s.pending[id]; !ok {
			s.mu.Unlock()
			return
		}
		delete(s.pending, id)
		s.mu.Unlock()
		s.fire(id)
	case <-check.cancel:
	}
}
