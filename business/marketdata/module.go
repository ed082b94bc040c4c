// Package marketdata implements the marketdata bounded context for
// CoinGecko proxying and USD pricing.
package marketdata

import (
	"context"
	"fmt"

	"github.com/stablearb/arbgate/business/marketdata/app"
	marketdataDI "github.com/stablearb/arbgate/business/marketdata/di"
	"github.com/stablearb/arbgate/business/marketdata/infra/coingecko"
	"github.com/stablearb/arbgate/internal/asset"
	"github.com/stablearb/arbgate/internal/config"
	"github.com/stablearb/arbgate/internal/di"
	"github.com/stablearb/arbgate/internal/logger"
	"github.com/stablearb/arbgate/internal/monolith"
)

// Module implements the marketdata bounded context.
type Module struct{}

// RegisterServices registers all marketdata services with the DI container.
// The CoinGecko client is built here, not in a factory, so a
// construction failure surfaces as a startup error.
func (m *Module) RegisterServices(c di.Container) error {
	cfg := c.Get("config").(*config.Config)
	log := c.Get("logger").(logger.LoggerInterface)

	provider, err := coingecko.NewClient(coingecko.ClientConfig{
		BaseURL:       cfg.Market.BaseURL,
		APIKey:        cfg.Market.APIKey,
		RatePerSecond: cfg.Market.RatePerSecond,
	}, log)
	if err != nil {
		return fmt.Errorf("create coingecko client: %w", err)
	}

	// Register MarketProvider (CoinGecko) - private dependency
	di.RegisterToken(c, marketdataDI.MarketProvider, func(di.ServiceRegistry) app.MarketProvider {
		return provider
	})

	// Register MarketService (public - exposed to other modules)
	di.RegisterToken(c, marketdataDI.MarketService, func(sr di.ServiceRegistry) *app.MarketService {
		log := sr.Get("logger").(logger.LoggerInterface)
		registry := sr.Get("assetRegistry").(*asset.Registry)
		return app.NewMarketService(marketdataDI.GetMarketProvider(sr), registry, log)
	})

	return nil
}

// Startup initializes the marketdata module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "marketdata module started")
	return nil
}
