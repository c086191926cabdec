package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(_ *Config) {}, ""},
		{"invalid port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"missing addrs", func(c *Config) { c.Database.Addrs = nil }, "database.addrs"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "memcached" }, "database.driver"},
		{"valkey driver", func(c *Config) { c.Database.Driver = "valkey" }, ""},
		{"negative shipping", func(c *Config) { c.Store.ShippingFeeJMD = fee(-1) }, "store.shipping_fee_jmd"},
		{"free shipping", func(c *Config) { c.Store.ShippingFeeJMD = fee(0) }, ""},
		{"unknown region", func(c *Config) { c.Store.DefaultRegion = "atlantis" }, "store.default_region"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error mentioning %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Database.Driver != "redis" {
		t.Errorf("expected Driver=redis, got %q", cfg.Database.Driver)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Auth.SessionTTL() != 7*24*time.Hour {
		t.Errorf("expected SessionTTL=168h, got %v", cfg.Auth.SessionTTL())
	}
	if cfg.Auth.CodeTTL() != 10*time.Minute {
		t.Errorf("expected CodeTTL=10m, got %v", cfg.Auth.CodeTTL())
	}
	if cfg.Store.ShippingFee() != 950 {
		t.Errorf("expected ShippingFee=950, got %v", cfg.Store.ShippingFee())
	}
	if cfg.Auth.MaxCodeAttempts != 5 {
		t.Errorf("expected MaxCodeAttempts=5, got %d", cfg.Auth.MaxCodeAttempts)
	}
	if cfg.Store.LowStockThreshold != 5 {
		t.Errorf("expected LowStockThreshold=5, got %d", cfg.Store.LowStockThreshold)
	}
	if cfg.Store.OrderListLimit != 200 {
		t.Errorf("expected OrderListLimit=200, got %d", cfg.Store.OrderListLimit)
	}
	if cfg.Store.CartTTL() != 30*24*time.Hour {
		t.Errorf("expected CartTTL=720h, got %v", cfg.Store.CartTTL())
	}
	if cfg.Store.SalesRetention() != 90*24*time.Hour {
		t.Errorf("expected SalesRetention=2160h, got %v", cfg.Store.SalesRetention())
	}
	if cfg.Store.DefaultRegion != "jamaica" {
		t.Errorf("expected DefaultRegion=jamaica, got %q", cfg.Store.DefaultRegion)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:     HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database: DatabaseConfig{Driver: "valkey", ReadinessTimeout: 15},
		Auth:     AuthConfig{SessionTTLHours: 2, CodeTTLMinutes: 3, MaxCodeAttempts: 3},
		Store:    StoreConfig{ShippingFeeJMD: fee(1200), LowStockThreshold: 2, OrderListLimit: 50, DefaultRegion: "uk"},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 || cfg.HTTP.WriteTimeoutSec != 60 || cfg.HTTP.ShutdownSec != 5 {
		t.Errorf("http overridden: %+v", cfg.HTTP)
	}
	if cfg.Database.Driver != "valkey" || cfg.Database.ReadinessTimeout != 15 {
		t.Errorf("database overridden: %+v", cfg.Database)
	}
	if cfg.Auth.SessionTTL() != 2*time.Hour || cfg.Auth.CodeTTL() != 3*time.Minute || cfg.Auth.MaxCodeAttempts != 3 {
		t.Errorf("auth overridden: %+v", cfg.Auth)
	}
	if cfg.Store.ShippingFee() != 1200 || cfg.Store.LowStockThreshold != 2 ||
		cfg.Store.OrderListLimit != 50 || cfg.Store.DefaultRegion != "uk" {
		t.Errorf("store overridden: %+v", cfg.Store)
	}
}

func fee(v float64) *float64 { return &v }

func TestParse_ShippingFee(t *testing.T) {
	base := "http:\n  port: 8080\ndatabase:\n  addrs: [\"localhost:6379\"]\n"
	tests := []struct {
		name string
		yaml string
		want float64
	}{
		{"absent", base, 950},
		{"free shipping", base + "store:\n  shipping_fee_jmd: 0\n", 0},
		{"custom", base + "store:\n  shipping_fee_jmd: 1500\n", 1500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yaml))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if got := cfg.Store.ShippingFee(); got != tt.want {
				t.Errorf("ShippingFee = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("MERCH_TEST_PORT", "9090")
	t.Setenv("MERCH_TEST_ADMIN", "admin@example.org")

	data := []byte(`
http:
  port: ${MERCH_TEST_PORT}
database:
  addrs: ["${MERCH_TEST_REDIS:-localhost:6379}"]
auth:
  admin_emails: ["${MERCH_TEST_ADMIN}"]
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if len(cfg.Database.Addrs) != 1 || cfg.Database.Addrs[0] != "localhost:6379" {
		t.Errorf("addrs = %v", cfg.Database.Addrs)
	}
	if len(cfg.Auth.AdminEmails) != 1 || cfg.Auth.AdminEmails[0] != "admin@example.org" {
		t.Errorf("admin emails = %v", cfg.Auth.AdminEmails)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [unclosed")); err == nil {
		t.Error("expected YAML error")
	}
	if _, err := Parse([]byte("http:\n  port: 8080\n")); err == nil {
		t.Error("expected validation error for missing addrs")
	}
}
