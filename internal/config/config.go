package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the merchstore API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Store    StoreConfig    `yaml:"store"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds member sign-in settings.
type AuthConfig struct {
	SessionTTLHours int      `yaml:"session_ttl_hours"`
	CodeTTLMinutes  int      `yaml:"code_ttl_minutes"`
	MaxCodeAttempts int      `yaml:"max_code_attempts"` // wrong codes before the pending one is burned
	AdminEmails     []string `yaml:"admin_emails"`      // added to the admin allow-list at startup
}

// SessionTTL returns the session lifetime.
func (a AuthConfig) SessionTTL() time.Duration { return time.Duration(a.SessionTTLHours) * time.Hour }

// CodeTTL returns the one-time code lifetime.
func (a AuthConfig) CodeTTL() time.Duration { return time.Duration(a.CodeTTLMinutes) * time.Minute }

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis or valkey (default: redis)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StoreConfig holds storefront business settings.
type StoreConfig struct {
	ShippingFeeJMD     *float64 `yaml:"shipping_fee_jmd"` // nil means unset; 0 is free shipping
	LowStockThreshold  int      `yaml:"low_stock_threshold"`
	OrderListLimit     int      `yaml:"order_list_limit"`
	CartTTLDays        int      `yaml:"cart_ttl_days"`
	SalesRetentionDays int      `yaml:"sales_retention_days"`
	DefaultRegion      string   `yaml:"default_region"`
}

// DefaultShippingFeeJMD applies when shipping_fee_jmd is absent.
const DefaultShippingFeeJMD = 950

// ShippingFee returns the flat delivery charge in JMD.
func (s StoreConfig) ShippingFee() float64 {
	if s.ShippingFeeJMD == nil {
		return DefaultShippingFeeJMD
	}
	return *s.ShippingFeeJMD
}

// CartTTL returns how long an untouched cart is kept.
func (s StoreConfig) CartTTL() time.Duration { return time.Duration(s.CartTTLDays) * 24 * time.Hour }

// SalesRetention returns how long daily sales counters are kept.
func (s StoreConfig) SalesRetention() time.Duration {
	return time.Duration(s.SalesRetentionDays) * 24 * time.Hour
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
// A .env file in the working directory, if present, is loaded first.
func Load(env string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration, expanding ${VAR} references, then
// applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Auth.SessionTTLHours <= 0 {
		c.Auth.SessionTTLHours = 24 * 7
	}
	if c.Auth.CodeTTLMinutes <= 0 {
		c.Auth.CodeTTLMinutes = 10
	}
	if c.Auth.MaxCodeAttempts <= 0 {
		c.Auth.MaxCodeAttempts = 5
	}
	if c.Store.ShippingFeeJMD == nil {
		fee := float64(DefaultShippingFeeJMD)
		c.Store.ShippingFeeJMD = &fee
	}
	if c.Store.LowStockThreshold <= 0 {
		c.Store.LowStockThreshold = 5
	}
	if c.Store.OrderListLimit <= 0 {
		c.Store.OrderListLimit = 200
	}
	if c.Store.CartTTLDays <= 0 {
		c.Store.CartTTLDays = 30
	}
	if c.Store.SalesRetentionDays <= 0 {
		c.Store.SalesRetentionDays = 90
	}
	if c.Store.DefaultRegion == "" {
		c.Store.DefaultRegion = "jamaica"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Database.Driver {
	case "redis", "valkey":
	default:
		return fmt.Errorf("database.driver must be \"redis\" or \"valkey\", got %q", c.Database.Driver)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if fee := c.Store.ShippingFee(); fee < 0 {
		return fmt.Errorf("store.shipping_fee_jmd must be non-negative, got %v", fee)
	}
	switch c.Store.DefaultRegion {
	case "jamaica", "us", "uk":
	default:
		return fmt.Errorf("store.default_region must be one of jamaica, us, uk, got %q", c.Store.DefaultRegion)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
