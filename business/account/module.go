// Package account implements the account bounded context for user
// configuration, balances and fund movement.
package account

import (
	"context"

	"github.com/stablearb/arbgate/business/account/app"
	accountDI "github.com/stablearb/arbgate/business/account/di"
	"github.com/stablearb/arbgate/business/account/infra"
	marketdataDI "github.com/stablearb/arbgate/business/marketdata/di"
	"github.com/stablearb/arbgate/internal/asset"
	"github.com/stablearb/arbgate/internal/config"
	"github.com/stablearb/arbgate/internal/di"
	"github.com/stablearb/arbgate/internal/logger"
	"github.com/stablearb/arbgate/internal/monolith"
	"github.com/stablearb/arbgate/internal/soroban"
)

// Module implements the account bounded context.
type Module struct{}

// RegisterServices registers all account services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register ContractGateway - private dependency
	di.RegisterToken(c, accountDI.ContractGateway, func(sr di.ServiceRegistry) app.ContractGateway {
		cfg := sr.Get("config").(*config.Config)
		invoker := sr.Get("soroban").(*soroban.Invoker)
		return infra.NewContractGateway(invoker, cfg.Stellar.ContractAddress)
	})

	// Register AccountService (public - exposed to other modules)
	di.RegisterToken(c, accountDI.AccountService, func(sr di.ServiceRegistry) *app.Service {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		registry := sr.Get("assetRegistry").(*asset.Registry)

		return app.NewService(
			accountDI.GetContractGateway(sr),
			registry,
			marketdataDI.GetMarketService(sr),
			app.ServiceConfig{NetworkPassphrase: cfg.Stellar.NetworkPassphrase},
			log,
		)
	})

	return nil
}

// Startup initializes the account module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "account module started")
	return nil
}
