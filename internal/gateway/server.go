// Package gateway is the JSON HTTP surface the web UI talks to. It
// exposes the contract action endpoints, DAO governance, market data,
// the opportunity WebSocket stream and the UI-state store.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	accountapp "github.com/stablearb/arbgate/business/account/app"
	daoapp "github.com/stablearb/arbgate/business/dao/app"
	marketapp "github.com/stablearb/arbgate/business/marketdata/app"
	oppapp "github.com/stablearb/arbgate/business/opportunity/app"
	"github.com/stablearb/arbgate/internal/config"
	"github.com/stablearb/arbgate/internal/logger"
	"github.com/stablearb/arbgate/internal/soroban"
	"github.com/stablearb/arbgate/internal/trendstore"
)

const shutdownTimeout = 10 * time.Second

// Services are the application services the gateway fronts.
type Services struct {
	Scanner  *oppapp.Scanner
	Accounts *accountapp.Service
	DAO      *daoapp.Service
	Market   *marketapp.MarketService
	RPC      *soroban.Client
	Store    *trendstore.Store
}

// Server is the HTTP API server.
type Server struct {
	cfg    config.ServerConfig
	logger logger.LoggerInterface

	scanner  *oppapp.Scanner
	accounts *accountapp.Service
	dao      *daoapp.Service
	market   *marketapp.MarketService
	rpc      *soroban.Client
	store    *trendstore.Store
	hub      *StreamHub

	engine *gin.Engine
	http   *http.Server
}

// New wires the router. The hub may be shared with the background
// poller so scans reach stream subscribers.
func New(cfg config.ServerConfig, svcs Services, hub *StreamHub, log logger.LoggerInterface) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		cfg:      cfg,
		logger:   log,
		scanner:  svcs.Scanner,
		accounts: svcs.Accounts,
		dao:      svcs.DAO,
		market:   svcs.Market,
		rpc:      svcs.RPC,
		store:    svcs.Store,
		hub:      hub,
	}

	engine := gin.New()
	engine.Use(requestID(), cors(cfg.AllowedOrigins), recovery(log))
	s.registerRoutes(engine)
	s.engine = engine

	return s
}

func (s *Server) registerRoutes(engine *gin.Engine) {
	engine.GET("/health", s.handleHealth)

	api := engine.Group("/api")
	{
		api.POST("/contract", s.handleContract)
		api.POST("/contract/submit", s.handleSubmit)
		api.POST("/dao", s.handleDAO)
		api.POST("/deploy-sac", s.handleDeploySAC)
		api.GET("/crypto", s.handleCrypto)

		api.GET("/state/:key", s.handleGetState)
		api.PUT("/state/:key", s.handlePutState)
		api.DELETE("/state/:key", s.handleDeleteState)

		if s.hub != nil {
			api.GET("/stream", s.hub.handle)
		}
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK
	if s.rpc != nil {
		if err := s.rpc.Health(c.Request.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}
	c.JSON(code, gin.H{
		"status":    status,
		"service":   "arbgate",
		"timestamp": time.Now().Unix(),
	})
}

// Router exposes the engine for tests.
func (s *Server) Router() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.http = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "api server listening", "addr", s.http.Addr)
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info(context.Background(), "api server stopped")
	return nil
}
