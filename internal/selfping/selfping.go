// Package selfping keeps the service awake on hosting platforms that sleep
// idle processes by periodically requesting its own public URL.
package selfping

import (
	"log/slog"
	"net/http"
	"time"
)

// Pinger periodically GETs a URL until stopped
type Pinger struct {
	url      string
	interval time.Duration
	client   *http.Client
	logger   *slog.Logger
	done     chan struct{}
}

// New creates a Pinger. Returns nil when url is empty (pinger disabled).
func New(url string, interval time.Duration, logger *slog.Logger) *Pinger {
	if url == "" {
		return nil
	}
	if interval <= 0 {
		interval = 14 * time.Minute
	}
	return &Pinger{
		url:      url,
		interval: interval,
		client:   &http.Client{Timeout: 30 * time.Second},
		logger:   logger.With(slog.String("component", "selfping")),
		done:     make(chan struct{}),
	}
}

// Run pings on the configured interval until Stop is called. Failures are
// logged and retried on the next tick.
func (p *Pinger) Run() {
	p.logger.Info("self-ping enabled", slog.String("url", p.url))
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.ping()
		case <-p.done:
			p.logger.Info("self-ping stopped")
			return
		}
	}
}

// Stop terminates the ping loop
func (p *Pinger) Stop() {
	close(p.done)
}

func (p *Pinger) ping() {
	resp, err := p.client.Get(p.url)
	if err != nil {
		p.logger.Warn("self-ping failed", slog.String("error", err.Error()))
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("self-ping unexpected status", slog.Int("status", resp.StatusCode))
		return
	}
	p.logger.Debug("self-ping ok")
}
