// Package di contains dependency injection tokens for the account context.
package di

import (
	"github.com/stablearb/arbgate/business/account/app"
	"github.com/stablearb/arbgate/internal/di"
)

// Public service tokens - exposed to other modules
var (
	AccountService = di.NewToken[*app.Service]("account.Service")
)

// Private dependency tokens - internal to account module
var (
	ContractGateway = di.NewToken[app.ContractGateway]("account:contractGateway")
)

// Helper functions for type-safe access
func GetAccountService(c di.ServiceRegistry) *app.Service {
	return di.GetToken(c, AccountService)
}

func GetContractGateway(c di.ServiceRegistry) app.ContractGateway {
	return di.GetToken(c, ContractGateway)
}
