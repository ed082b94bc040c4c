// Package di contains dependency injection tokens for the opportunity context.
package di

import (
	"github.com/stablearb/arbgate/business/opportunity/app"
	"github.com/stablearb/arbgate/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Scanner = di.NewToken[*app.Scanner]("opportunity.Scanner")
	Poller  = di.NewToken[*app.Poller]("opportunity.Poller")
)

// Private dependency tokens - internal to opportunity module
var (
	ContractReader = di.NewToken[app.ContractReader]("opportunity:contractReader")
	Reporter       = di.NewToken[app.Reporter]("opportunity:reporter")
)

// Helper functions for type-safe access
func GetScanner(c di.ServiceRegistry) *app.Scanner {
	return di.GetToken(c, Scanner)
}

func GetPoller(c di.ServiceRegistry) *app.Poller {
	return di.GetToken(c, Poller)
}

func GetContractReader(c di.ServiceRegistry) app.ContractReader {
	return di.GetToken(c, ContractReader)
}

func GetReporter(c di.ServiceRegistry) app.Reporter {
	return di.GetToken(c, Reporter)
}
