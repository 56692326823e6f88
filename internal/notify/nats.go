// Package notify bridges the in-process event stream onto NATS subjects so
// out-of-process renderers can re-render views without linking the service.
// Publishing is best-effort: a failed publish is logged and never propagated
// back into the state machine.
package notify

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/yoBruxo/PTbotKND/internal/events"
	"github.com/yoBruxo/PTbotKND/internal/model"
)

// Subject prefix for all published events
const subjectPrefix = "party"

// Publisher forwards events from a dispatcher subscription to NATS
type Publisher struct {
	conn   *nats.Conn
	logger *slog.Logger
	done   chan struct{}
}

// NewPublisher connects to the NATS server at url
func NewPublisher(url string, logger *slog.Logger) (*Publisher, error) {
	conn, err := nats.Connect(url, nats.Name("ptbot-notify"))
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}
	return &Publisher{
		conn:   conn,
		logger: logger.With(slog.String("component", "notify")),
		done:   make(chan struct{}),
	}, nil
}

// Run consumes the subscription until its channel is closed, publishing each
// event. Intended to be run as a goroutine.
func (p *Publisher) Run(sub *events.Subscription) {
	defer close(p.done)
	p.logger.Info("nats publisher started")
	for ev := range sub.Events() {
		p.publish(ev)
	}
	p.logger.Info("nats publisher stopped")
}

// Close drains the connection after Run has finished
func (p *Publisher) Close() {
	<-p.done
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("nats drain failed", slog.String("error", err.Error()))
	}
}

func (p *Publisher) publish(ev model.Event) {
	data, err := json.Marshal(wireEvent{
		ID:        ev.ID,
		Type:      string(ev.Type),
		Timestamp: ev.Timestamp.Unix(),
		PartyID:   int64(ev.PartyID),
		ActorID:   string(ev.ActorID),
		Payload:   ev.Payload,
	})
	if err != nil {
		p.logger.Error("event marshal failed", slog.String("error", err.Error()))
		return
	}

	if err := p.conn.Publish(subjectFor(ev.Type), data); err != nil {
		p.logger.Warn("event publish failed",
			slog.String("subject", subjectFor(ev.Type)),
			slog.String("error", err.Error()))
	}
}

func subjectFor(t model.EventType) string {
	switch t {
	case model.EventPartyCreated:
		return subjectPrefix + ".created"
	case model.EventRosterChanged:
		return subjectPrefix + ".roster"
	case model.EventPartyClosed:
		return subjectPrefix + ".closed"
	default:
		return subjectPrefix + ".event"
	}
}

// wireEvent is the JSON shape published on NATS
type wireEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	PartyID   int64  `json:"party_id"`
	ActorID   string `json:"actor_id,omitempty"`
	Payload   any    `json:"payload,omitempty"`
}
