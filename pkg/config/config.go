package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Session store kinds.
const (
	SessionStoreCookie = "cookie"
	SessionStoreRedis  = "redis"
)

// Config holds all configuration for hirepay-console.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (session secret, token key, Redis password) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"3000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	BaseURL  string `yaml:"base_url" env:"BASE_URL" env-default:""` // Auto-derived from Port if empty
	Version  string `yaml:"-"`                                      // Set at load time, not from config

	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`

	// TLS configuration (optional - if both provided, server uses HTTPS)
	TLSCertPath string `yaml:"tls_cert_path" env:"TLS_CERT_PATH" env-default:""`
	TLSKeyPath  string `yaml:"tls_key_path" env:"TLS_KEY_PATH" env-default:""`

	// CookieDomain is the domain for the session cookie (optional).
	// If empty, it will be auto-derived from BaseURL.
	CookieDomain string `yaml:"cookie_domain" env:"COOKIE_DOMAIN" env-default:""`

	// HirePay is the upstream REST API.
	HirePay HirePayConfig `yaml:"hirepay"`

	Session       SessionConfig  `yaml:"session"`
	Redis         RedisConfig    `yaml:"redis"`
	Uploads       UploadsConfig  `yaml:"uploads"`
	LoginThrottle ThrottleConfig `yaml:"login_throttle"`
}

// HirePayConfig holds the upstream API connection settings.
type HirePayConfig struct {
	BaseURL string `yaml:"base_url" env:"HIREPAY_API_URL" env-default:"http://localhost:8080"`
	// Timeout bounds every upstream request. There are no retries.
	Timeout time.Duration `yaml:"timeout" env:"HIREPAY_API_TIMEOUT" env-default:"30s"`
}

// SessionConfig controls where the bearer token is kept between browser requests.
type SessionConfig struct {
	// Store is "cookie" (token in an encrypted cookie) or "redis" (cookie holds a session id).
	Store  string        `yaml:"store" env:"SESSION_STORE" env-default:"cookie"`
	MaxAge time.Duration `yaml:"max_age" env:"SESSION_MAX_AGE" env-default:"12h"`

	// Secret signs and encrypts the session cookie. Any passphrase; it is hashed to a key.
	Secret string `yaml:"-" env:"SESSION_SECRET"` // Secret - not in YAML

	// TokenKey seals tokens stored in Redis. 32 bytes base64 encoded, or a passphrase.
	// Generate with: openssl rand -base64 32
	TokenKey string `yaml:"-" env:"SESSION_TOKEN_KEY"` // Secret - not in YAML
}

// RedisConfig holds Redis connection settings for the redis session store.
type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
	Password string `yaml:"-" env:"REDIS_PASSWORD"` // Secret - not in YAML
}

// UploadsConfig bounds files accepted for send and sign.
type UploadsConfig struct {
	MaxBytes int64 `yaml:"max_bytes" env:"UPLOAD_MAX_BYTES" env-default:"5242880"`
}

// ThrottleConfig limits login attempts per client address.
type ThrottleConfig struct {
	PerMinute int `yaml:"per_minute" env:"LOGIN_THROTTLE_PER_MINUTE" env-default:"10"`
	Burst     int `yaml:"burst" env:"LOGIN_THROTTLE_BURST" env-default:"5"`
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	if err := cfg.validateTLS(); err != nil {
		return nil, fmt.Errorf("invalid TLS configuration: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Auto-derive BaseURL from Port if not explicitly set
	// Use HTTPS scheme if TLS is configured
	if cfg.BaseURL == "" {
		scheme := "http"
		if cfg.TLSCertPath != "" {
			scheme = "https"
		}
		cfg.BaseURL = (&url.URL{
			Scheme: scheme,
			Host:   "localhost:" + cfg.Port,
		}).String()
	}

	return cfg, nil
}

// validate checks settings that have no safe default.
func (c *Config) validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET must be set")
	}

	switch c.Session.Store {
	case SessionStoreCookie:
	case SessionStoreRedis:
		if c.Session.TokenKey == "" {
			return fmt.Errorf("SESSION_TOKEN_KEY must be set when session store is redis")
		}
	default:
		return fmt.Errorf("unknown session store %q (want cookie or redis)", c.Session.Store)
	}

	u, err := url.Parse(c.HirePay.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("hirepay base_url must be an absolute URL, got %q", c.HirePay.BaseURL)
	}

	if c.HirePay.Timeout <= 0 {
		return fmt.Errorf("hirepay timeout must be positive")
	}
	if c.Uploads.MaxBytes <= 0 {
		return fmt.Errorf("uploads max_bytes must be positive")
	}
	if c.LoginThrottle.PerMinute <= 0 || c.LoginThrottle.Burst <= 0 {
		return fmt.Errorf("login_throttle per_minute and burst must be positive")
	}

	return nil
}

// validateTLS ensures TLS configuration is valid if provided.
// Both cert and key must be provided together, and files must exist.
func (c *Config) validateTLS() error {
	certSet := c.TLSCertPath != ""
	keySet := c.TLSKeyPath != ""

	if certSet != keySet {
		return fmt.Errorf("both tls_cert_path and tls_key_path must be provided together")
	}

	// Readability is checked by tls.LoadX509KeyPair at startup
	if certSet {
		if _, err := os.Stat(c.TLSCertPath); err != nil {
			return fmt.Errorf("TLS cert file does not exist: %w", err)
		}
		if _, err := os.Stat(c.TLSKeyPath); err != nil {
			return fmt.Errorf("TLS key file does not exist: %w", err)
		}
	}

	return nil
}

// IsLocal reports whether the console runs in the local development environment.
func (c *Config) IsLocal() bool {
	return strings.EqualFold(c.Env, "local")
}

// ListenAddr returns the address the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.BindAddr, c.Port)
}

// Addr returns the host:port Redis address, resolving localhost when inside Docker.
func (c *RedisConfig) Addr() string {
	return net.JoinHostPort(ResolveHostForDocker(c.Host), strconv.Itoa(c.Port))
}
