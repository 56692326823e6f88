// Package events fans out committed-mutation events to render collaborators.
// Delivery is best-effort: a subscriber that cannot keep up has events
// dropped with a warning rather than blocking the publisher, so a slow
// renderer never backs up into the state machine.
package events

import (
	"log/slog"
	"sync"

	"github.com/yoBruxo/PTbotKND/internal/model"
)

// DefaultBuffer is the per-subscription channel capacity
const DefaultBuffer = 256

// Subscription is one consumer's event stream
type Subscription struct {
	name string
	ch   chan model.Event
}

// Events returns the channel events are delivered on. It is closed when the
// subscription is removed or the dispatcher shuts down.
func (s *Subscription) Events() <-chan model.Event {
	return s.ch
}

// Name returns the subscriber name used in log messages
func (s *Subscription) Name() string {
	return s.name
}

// Dispatcher delivers events to all registered subscriptions
type Dispatcher struct {
	mu     sync.RWMutex
	subs   map[*Subscription]bool
	closed bool
	logger *slog.Logger
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		subs:   make(map[*Subscription]bool),
		logger: logger.With(slog.String("component", "events")),
	}
}

// Subscribe registers a named consumer. buffer <= 0 uses DefaultBuffer.
func (d *Dispatcher) Subscribe(name string, buffer int) *Subscription {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	sub := &Subscription{
		name: name,
		ch:   make(chan model.Event, buffer),
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		close(sub.ch)
		return sub
	}
	d.subs[sub] = true
	d.logger.Info("subscriber registered",
		slog.String("subscriber", name),
		slog.Int("total_subscribers", len(d.subs)))
	return sub
}

// Unsubscribe removes a consumer and closes its channel
func (d *Dispatcher) Unsubscribe(sub *Subscription) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.subs[sub]; !ok {
		return
	}
	delete(d.subs, sub)
	close(sub.ch)
	d.logger.Info("subscriber removed",
		slog.String("subscriber", sub.name),
		slog.Int("total_subscribers", len(d.subs)))
}

// Publish delivers an event to every subscription without blocking
func (d *Dispatcher) Publish(ev model.Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	for sub := range d.subs {
		select {
		case sub.ch <- ev:
		default:
			d.logger.Warn("event dropped - subscriber buffer full",
				slog.String("subscriber", sub.name),
				slog.String("event_type", string(ev.Type)),
				slog.Int64("party_id", int64(ev.PartyID)))
		}
	}
}

// Close shuts down the dispatcher and closes all subscriber channels
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	for sub := range d.subs {
		close(sub.ch)
		delete(d.subs, sub)
	}
	d.logger.Info("dispatcher stopped")
}

// SubscriberCount returns the number of registered subscriptions
func (d *Dispatcher) SubscriberCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subs)
}
