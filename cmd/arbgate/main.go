// Package main is the entry point for the arbgate API gateway.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/stablearb/arbgate/business/account"
	accountDI "github.com/stablearb/arbgate/business/account/di"
	"github.com/stablearb/arbgate/business/dao"
	daoDI "github.com/stablearb/arbgate/business/dao/di"
	"github.com/stablearb/arbgate/business/marketdata"
	marketdataDI "github.com/stablearb/arbgate/business/marketdata/di"
	"github.com/stablearb/arbgate/business/opportunity"
	opportunityDI "github.com/stablearb/arbgate/business/opportunity/di"
	"github.com/stablearb/arbgate/internal/apm"
	"github.com/stablearb/arbgate/internal/config"
	"github.com/stablearb/arbgate/internal/gateway"
	"github.com/stablearb/arbgate/internal/health"
	"github.com/stablearb/arbgate/internal/logger"
	"github.com/stablearb/arbgate/internal/metrics"
	"github.com/stablearb/arbgate/internal/monolith"
	"github.com/stablearb/arbgate/pkg/ui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

const healthPort = 8081

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to configuration file")
	monitorMode := flag.Bool("monitor", false, "Run the terminal monitor against a running gateway")
	streamURL := flag.String("stream", "ws://localhost:8080/api/stream", "Stream URL for monitor mode")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("arbgate %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		if !*monitorMode {
			fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		}
		cancel()
	}()

	var err error
	if *monitorMode {
		err = runMonitor(ctx, *streamURL)
	} else {
		err = runServer(ctx, *configPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logLevel := logger.LevelInfo
	switch cfg.App.LogLevel {
	case "debug":
		logLevel = logger.LevelDebug
	case "warn":
		logLevel = logger.LevelWarn
	case "error":
		logLevel = logger.LevelError
	}
	log := logger.New(os.Stderr, logLevel, cfg.App.Name, nil)
	log.Info(ctx, "starting arbgate",
		"version", version,
		"environment", cfg.App.Environment,
	)

	// Observability is opt-in via config.
	var traceProvider apm.TraceProvider
	if cfg.Telemetry.Enabled {
		if cfg.Telemetry.ServiceName != "" {
			os.Setenv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
		}
		if cfg.Telemetry.OTLPEndpoint != "" {
			os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.OTLPEndpoint)
		}

		traceProvider = apm.NewTraceProvider(log, apm.WithProvider(apm.ZipkinProvider, log))
		log.Info(ctx, "tracing initialized", "provider", "zipkin", "endpoint", cfg.Telemetry.OTLPEndpoint)

		metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
			metrics.WithProviderConfig(metrics.ProviderCfg{
				Provider: metrics.PrometheusProvider,
			}),
		)

		port := cfg.Telemetry.PrometheusPort
		if port == 0 {
			port = 9090
		}
		go metrics.ServePrometheusMetrics(metrics.WithPort(strconv.Itoa(port)))
		log.Info(ctx, "prometheus metrics server started", "port", port)
	}
	defer func() {
		if traceProvider != nil {
			traceProvider.Stop()
		}
	}()

	mono, err := monolith.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create monolith: %w", err)
	}
	defer mono.Close()

	healthServer := health.NewServer(healthPort, version)
	healthServer.RegisterCheck("soroban-rpc", func(ctx context.Context) (bool, string) {
		if err := mono.Soroban().RPC().Health(ctx); err != nil {
			return false, err.Error()
		}
		return true, "ok"
	})
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	} else {
		log.Info(ctx, "health server started", "port", healthPort)
	}
	defer healthServer.Stop(ctx)

	// The stream hub must exist before module registration so the
	// background poller can pick it up as its broadcaster.
	hub := gateway.NewStreamHub(cfg.Server.AllowedOrigins, log)
	mono.Container().Register("streamHub", hub)

	modules := []monolith.Module{
		&marketdata.Module{},
		&account.Module{},
		&dao.Module{},
		&opportunity.Module{},
	}
	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	services := gateway.Services{
		Scanner:  opportunityDI.GetScanner(mono.Services()),
		Accounts: accountDI.GetAccountService(mono.Services()),
		DAO:      daoDI.GetDAOService(mono.Services()),
		Market:   marketdataDI.GetMarketService(mono.Services()),
		RPC:      mono.Soroban().RPC(),
		Store:    mono.Store(),
	}

	server := gateway.New(cfg.Server, services, hub, log)
	return server.Run(ctx)
}

func runMonitor(ctx context.Context, streamURL string) error {
	p := tea.NewProgram(ui.New(streamURL), tea.WithAltScreen())

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("monitor error: %w", err)
	}
	return nil
}
