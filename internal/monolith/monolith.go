// Package monolith provides the application container and module interface.
package monolith

import (
	"context"

	"github.com/stablearb/arbgate/internal/asset"
	"github.com/stablearb/arbgate/internal/config"
	"github.com/stablearb/arbgate/internal/di"
	"github.com/stablearb/arbgate/internal/logger"
	"github.com/stablearb/arbgate/internal/soroban"
	"github.com/stablearb/arbgate/internal/trendstore"
)

// Monolith is the main application container providing access to shared infrastructure.
type Monolith interface {
	Config() *config.Config
	Logger() logger.LoggerInterface
	Soroban() *soroban.Invoker
	AssetRegistry() *asset.Registry
	Store() *trendstore.Store
	Services() di.ServiceRegistry
}

// Module represents a bounded context module that can register services and start up.
type Module interface {
	RegisterServices(di.Container) error
	Startup(context.Context, Monolith) error
}

// app implements the Monolith interface.
type app struct {
	config        *config.Config
	logger        logger.LoggerInterface
	invoker       *soroban.Invoker
	assetRegistry *asset.Registry
	store         *trendstore.Store
	container     di.Container
}

// New creates a new Monolith instance.
func New(cfg *config.Config, log logger.LoggerInterface) (*app, error) {
	rpc, err := soroban.NewClient(soroban.ClientConfig{
		URL:     cfg.Stellar.RPCURL,
		Timeout: cfg.Stellar.RequestTimeout,
	}, log)
	if err != nil {
		return nil, err
	}

	invoker := soroban.NewInvoker(soroban.InvokerConfig{
		HorizonURL:        cfg.Stellar.HorizonURL,
		NetworkPassphrase: cfg.Stellar.NetworkPassphrase,
	}, rpc, log)

	store, err := trendstore.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	// Use default asset registry (pre-populated with well-known testnet assets)
	assetRegistry := asset.DefaultRegistry()

	container := di.NewContainer()

	// Register global services
	container.Register("config", cfg)
	container.Register("logger", log)
	container.Register("soroban", invoker)
	container.Register("assetRegistry", assetRegistry)
	container.Register("store", store)

	return &app{
		config:        cfg,
		logger:        log,
		invoker:       invoker,
		assetRegistry: assetRegistry,
		store:         store,
		container:     container,
	}, nil
}

func (a *app) Config() *config.Config {
	return a.config
}

func (a *app) Logger() logger.LoggerInterface {
	return a.logger
}

func (a *app) Soroban() *soroban.Invoker {
	return a.invoker
}

func (a *app) AssetRegistry() *asset.Registry {
	return a.assetRegistry
}

func (a *app) Store() *trendstore.Store {
	return a.store
}

func (a *app) Services() di.ServiceRegistry {
	return a.container
}

// Container returns the DI container for module registration.
func (a *app) Container() di.Container {
	return a.container
}

// RegisterModules registers all provided modules.
func (a *app) RegisterModules(modules ...Module) error {
	for _, m := range modules {
		if err := m.RegisterServices(a.container); err != nil {
			return err
		}
	}
	return nil
}

// StartModules starts all provided modules.
func (a *app) StartModules(ctx context.Context, modules ...Module) error {
	for _, m := range modules {
		if err := m.Startup(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all resources.
func (a *app) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
