// Package dao implements the dao bounded context for governance
// proposals, voting and staking.
package dao

import (
	"context"

	"github.com/stablearb/arbgate/business/dao/app"
	daoDI "github.com/stablearb/arbgate/business/dao/di"
	"github.com/stablearb/arbgate/business/dao/infra"
	"github.com/stablearb/arbgate/internal/config"
	"github.com/stablearb/arbgate/internal/di"
	"github.com/stablearb/arbgate/internal/logger"
	"github.com/stablearb/arbgate/internal/monolith"
	"github.com/stablearb/arbgate/internal/soroban"
)

// Module implements the dao bounded context.
type Module struct{}

// RegisterServices registers all dao services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Register ContractGateway - private dependency
	di.RegisterToken(c, daoDI.ContractGateway, func(sr di.ServiceRegistry) app.ContractGateway {
		cfg := sr.Get("config").(*config.Config)
		invoker := sr.Get("soroban").(*soroban.Invoker)
		return infra.NewContractGateway(invoker, cfg.Stellar.DAOContractAddress)
	})

	// Register DAOService (public - exposed to other modules)
	di.RegisterToken(c, daoDI.DAOService, func(sr di.ServiceRegistry) *app.Service {
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewService(daoDI.GetContractGateway(sr), log)
	})

	return nil
}

// Startup initializes the dao module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "dao module started")
	return nil
}
