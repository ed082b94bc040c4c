package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.App.Name != "arbgate" {
		t.Errorf("app.name = %q", cfg.App.Name)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d", cfg.Server.Port)
	}
	if cfg.Server.WriteTimeout != 150*time.Second {
		t.Errorf("server.write_timeout = %s, want 150s", cfg.Server.WriteTimeout)
	}
	if cfg.Stellar.RPCURL != DefaultSorobanRPCURL {
		t.Errorf("stellar.rpc_url = %q", cfg.Stellar.RPCURL)
	}
	if cfg.Stellar.ContractAddress != DefaultArbitrageContract {
		t.Errorf("stellar.contract_address = %q", cfg.Stellar.ContractAddress)
	}
	if !cfg.Scanner.Enabled || cfg.Scanner.Interval != 60*time.Second {
		t.Errorf("scanner = %+v", cfg.Scanner)
	}
	if cfg.Market.BaseURL != "https://api.coingecko.com/api/v3" {
		t.Errorf("market.base_url = %q", cfg.Market.BaseURL)
	}
	if cfg.Store.Path != "arbgate.db" {
		t.Errorf("store.path = %q", cfg.Store.Path)
	}
	if cfg.Telemetry.Enabled {
		t.Error("telemetry enabled by default")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ARBGATE_PORT", "9999")
	t.Setenv("ARBGATE_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.App.LogLevel != "debug" {
		t.Errorf("app.log_level = %q, want debug", cfg.App.LogLevel)
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Stellar: StellarConfig{
			RPCURL:            DefaultSorobanRPCURL,
			NetworkPassphrase: "Test SDF Network ; September 2015",
			ContractAddress:   DefaultArbitrageContract,
		},
		Scanner: ScannerConfig{Interval: 30 * time.Second},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing rpc url", func(c *Config) { c.Stellar.RPCURL = "" }, "rpc_url"},
		{"missing passphrase", func(c *Config) { c.Stellar.NetworkPassphrase = "" }, "network_passphrase"},
		{"bad contract", func(c *Config) { c.Stellar.ContractAddress = "not-a-contract" }, "contract_address"},
		{"bad dao contract", func(c *Config) { c.Stellar.DAOContractAddress = "GXYZ" }, "dao_contract_address"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"interval too short", func(c *Config) { c.Scanner.Interval = 100 * time.Millisecond }, "scanner.interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate failed: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
