// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"github.com/stellar/go/strkey"
)

// Default testnet contract deployments. Overridable via env for other
// networks.
const (
	DefaultArbitrageContract = "CCKGFSM4JTAD2DULINQVO4YVUJVO6OJS7AMRS56DZMERF5W2LCD5GVYD"
	DefaultSorobanRPCURL     = "https://soroban-testnet.stellar.org"
	DefaultHorizonURL        = "https://horizon-testnet.stellar.org"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Stellar   StellarConfig   `mapstructure:"stellar"`
	Scanner   ScannerConfig   `mapstructure:"scanner"`
	Market    MarketConfig    `mapstructure:"market"`
	Store     StoreConfig     `mapstructure:"store"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// ServerConfig holds the HTTP API server settings.
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// StellarConfig holds network endpoints and contract deployments.
type StellarConfig struct {
	RPCURL              string        `mapstructure:"rpc_url"`
	HorizonURL          string        `mapstructure:"horizon_url"`
	NetworkPassphrase   string        `mapstructure:"network_passphrase"`
	ContractAddress     string        `mapstructure:"contract_address"`
	DAOContractAddress  string        `mapstructure:"dao_contract_address"`
	KaleContractAddress string        `mapstructure:"kale_contract_address"`
	RequestTimeout      time.Duration `mapstructure:"request_timeout"`
}

// ScannerConfig holds the background opportunity scanner settings.
type ScannerConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Enabled  bool          `mapstructure:"enabled"`
	TUIMode  bool          `mapstructure:"-"` // set at runtime, not from config file
}

// MarketConfig holds CoinGecko market data settings.
type MarketConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	APIKey        string        `mapstructure:"api_key"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
}

// StoreConfig holds the embedded state store settings.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPHeaders    string `mapstructure:"otlp_headers"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("ARBGATE")
	v.AutomaticEnv()

	// Bind env vars to config keys
	bindEnvVars(v)

	// Set defaults
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "ARBGATE_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "ARBGATE_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "ARBGATE_LOG_LEVEL", "LOG_LEVEL")

	// Server
	v.BindEnv("server.port", "ARBGATE_PORT", "PORT")

	// Stellar
	v.BindEnv("stellar.rpc_url", "ARBGATE_RPC_URL", "SOROBAN_RPC_URL")
	v.BindEnv("stellar.horizon_url", "ARBGATE_HORIZON_URL", "HORIZON_URL")
	v.BindEnv("stellar.network_passphrase", "ARBGATE_NETWORK_PASSPHRASE", "NETWORK_PASSPHRASE")
	v.BindEnv("stellar.contract_address", "ARBGATE_CONTRACT_ADDRESS", "CONTRACT_ADDRESS")
	v.BindEnv("stellar.dao_contract_address", "ARBGATE_DAO_CONTRACT_ADDRESS", "DAO_CONTRACT_ADDRESS")
	v.BindEnv("stellar.kale_contract_address", "ARBGATE_KALE_CONTRACT_ADDRESS", "KALE_CONTRACT_ADDRESS")

	// Scanner
	v.BindEnv("scanner.interval", "ARBGATE_SCAN_INTERVAL")
	v.BindEnv("scanner.enabled", "ARBGATE_SCAN_ENABLED")

	// Market data
	v.BindEnv("market.base_url", "ARBGATE_COINGECKO_URL", "COINGECKO_URL")
	v.BindEnv("market.api_key", "ARBGATE_COINGECKO_API_KEY", "COINGECKO_API_KEY")

	// Store
	v.BindEnv("store.path", "ARBGATE_STORE_PATH")

	// Telemetry
	v.BindEnv("telemetry.enabled", "ARBGATE_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "ARBGATE_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "ARBGATE_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "arbgate")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "150s") // submit+await can take 2 minutes
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Stellar testnet defaults
	v.SetDefault("stellar.rpc_url", DefaultSorobanRPCURL)
	v.SetDefault("stellar.horizon_url", DefaultHorizonURL)
	v.SetDefault("stellar.network_passphrase", "Test SDF Network ; September 2015")
	v.SetDefault("stellar.contract_address", DefaultArbitrageContract)
	v.SetDefault("stellar.request_timeout", "30s")

	// Scanner defaults
	v.SetDefault("scanner.interval", "60s")
	v.SetDefault("scanner.enabled", true)

	// Market data defaults
	v.SetDefault("market.base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("market.rate_per_second", 0.5)
	v.SetDefault("market.cache_ttl", "60s")

	// Store defaults
	v.SetDefault("store.path", "arbgate.db")

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "arbgate")
	v.SetDefault("telemetry.prometheus_port", 9090)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Stellar.RPCURL == "" {
		return fmt.Errorf("stellar.rpc_url is required")
	}
	if c.Stellar.NetworkPassphrase == "" {
		return fmt.Errorf("stellar.network_passphrase is required")
	}
	if !isContractAddress(c.Stellar.ContractAddress) {
		return fmt.Errorf("invalid stellar.contract_address: %s", c.Stellar.ContractAddress)
	}
	if c.Stellar.DAOContractAddress != "" && !isContractAddress(c.Stellar.DAOContractAddress) {
		return fmt.Errorf("invalid stellar.dao_contract_address: %s", c.Stellar.DAOContractAddress)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port: %d", c.Server.Port)
	}
	if c.Scanner.Interval < time.Second {
		return fmt.Errorf("scanner.interval must be at least 1s")
	}
	return nil
}

func isContractAddress(addr string) bool {
	_, err := strkey.Decode(strkey.VersionByteContract, addr)
	return err == nil
}
