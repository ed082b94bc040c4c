package app

import (
	"context"
	"time"

	"github.com/stablearb/arbgate/internal/logger"
)

// PollerConfig holds background scan configuration.
type PollerConfig struct {
	Interval time.Duration
}

// Poller re-runs the advanced scan on a fixed interval and fans the
// batch out to the reporter and any stream subscribers. A failed scan
// is logged and skipped; the loop keeps its cadence.
type Poller struct {
	scanner     *Scanner
	reporter    Reporter
	broadcaster Broadcaster
	interval    time.Duration
	logger      logger.LoggerInterface
}

// NewPoller creates a Poller. broadcaster may be nil when no stream
// endpoint is wired.
func NewPoller(scanner *Scanner, reporter Reporter, broadcaster Broadcaster, cfg PollerConfig, log logger.LoggerInterface) *Poller {
	interval := cfg.Interval
	if interval == 0 {
		interval = 60 * time.Second
	}
	return &Poller{
		scanner:     scanner,
		reporter:    reporter,
		broadcaster: broadcaster,
		interval:    interval,
		logger:      log,
	}
}

// Start begins the scan loop. The first scan runs immediately.
func (p *Poller) Start(ctx context.Context) error {
	if err := p.reporter.Start(ctx); err != nil {
		return err
	}

	go p.run(ctx)
	return nil
}

func (p *Poller) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.scan(ctx)
	for {
		select {
		case <-ctx.Done():
			p.logger.Info(ctx, "opportunity poller stopping", "reason", ctx.Err())
			return
		case <-ticker.C:
			p.scan(ctx)
		}
	}
}

func (p *Poller) scan(ctx context.Context) {
	result, err := p.scanner.ScanAdvanced(ctx)
	if err != nil {
		p.logger.Warn(ctx, "scheduled scan failed", "error", err)
		return
	}

	p.reporter.Report(result)
	if p.broadcaster != nil {
		p.broadcaster.Broadcast(result)
	}
}

// Stop gracefully shuts down the poller's reporter.
func (p *Poller) Stop() error {
	return p.reporter.Stop()
}
