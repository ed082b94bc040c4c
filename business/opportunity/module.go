// Package opportunity implements the opportunity bounded context for
// contract scan decoding and background polling.
package opportunity

import (
	"context"

	"github.com/stablearb/arbgate/business/opportunity/app"
	opportunityDI "github.com/stablearb/arbgate/business/opportunity/di"
	"github.com/stablearb/arbgate/business/opportunity/infra"
	"github.com/stablearb/arbgate/internal/config"
	"github.com/stablearb/arbgate/internal/di"
	"github.com/stablearb/arbgate/internal/logger"
	"github.com/stablearb/arbgate/internal/monolith"
	"github.com/stablearb/arbgate/internal/soroban"
)

// Module implements the opportunity bounded context.
type Module struct{}

// RegisterServices registers all opportunity services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register ContractReader - private dependency
	di.RegisterToken(c, opportunityDI.ContractReader, func(sr di.ServiceRegistry) app.ContractReader {
		cfg := sr.Get("config").(*config.Config)
		invoker := sr.Get("soroban").(*soroban.Invoker)
		return infra.NewContractReader(invoker, cfg.Stellar.ContractAddress)
	})

	// Register Reporter - private dependency
	di.RegisterToken(c, opportunityDI.Reporter, func(sr di.ServiceRegistry) app.Reporter {
		return infra.NewConsoleReporter()
	})

	// Register Scanner (public - exposed to other modules)
	di.RegisterToken(c, opportunityDI.Scanner, func(sr di.ServiceRegistry) *app.Scanner {
		log := sr.Get("logger").(logger.LoggerInterface)
		reader := opportunityDI.GetContractReader(sr)
		return app.NewScanner(reader, app.NewFormatter(log), log)
	})

	// Register Poller (public - started on module startup)
	di.RegisterToken(c, opportunityDI.Poller, func(sr di.ServiceRegistry) *app.Poller {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		var broadcaster app.Broadcaster
		if hub := sr.Get("streamHub"); hub != nil {
			broadcaster = hub.(app.Broadcaster)
		}

		return app.NewPoller(
			opportunityDI.GetScanner(sr),
			opportunityDI.GetReporter(sr),
			broadcaster,
			app.PollerConfig{Interval: cfg.Scanner.Interval},
			log,
		)
	})

	return nil
}

// Startup initializes the opportunity module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()
	cfg := mono.Config()

	if !cfg.Scanner.Enabled {
		log.Info(ctx, "opportunity module started, background scanner disabled")
		return nil
	}

	poller := opportunityDI.GetPoller(mono.Services())
	if err := poller.Start(ctx); err != nil {
		return err
	}

	log.Info(ctx, "opportunity module started", "scan_interval", cfg.Scanner.Interval)
	return nil
}
