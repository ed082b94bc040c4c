// Package di contains dependency injection tokens for the dao context.
package di

import (
	"github.com/stablearb/arbgate/business/dao/app"
	"github.com/stablearb/arbgate/internal/di"
)

// Public service tokens - exposed to other modules
var (
	DAOService = di.NewToken[*app.Service]("dao.Service")
)

// Private dependency tokens - internal to dao module
var (
	ContractGateway = di.NewToken[app.ContractGateway]("dao:contractGateway")
)

// Helper functions for type-safe access
func GetDAOService(c di.ServiceRegistry) *app.Service {
	return di.GetToken(c, DAOService)
}

func GetContractGateway(c di.ServiceRegistry) app.ContractGateway {
	return di.GetToken(c, ContractGateway)
}
