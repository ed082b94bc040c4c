// Package di contains dependency injection tokens for the marketdata context.
package di

import (
	"github.com/stablearb/arbgate/business/marketdata/app"
	"github.com/stablearb/arbgate/internal/di"
)

// Public service tokens - exposed to other modules
var (
	MarketService = di.NewToken[*app.MarketService]("marketdata.MarketService")
)

// Private dependency tokens - internal to marketdata module
var (
	MarketProvider = di.NewToken[app.MarketProvider]("marketdata:provider")
)

// Helper functions for type-safe access
func GetMarketService(c di.ServiceRegistry) *app.MarketService {
	return di.GetToken(c, MarketService)
}

func GetMarketProvider(c di.ServiceRegistry) app.MarketProvider {
	return di.GetToken(c, MarketProvider)
}
