// Package config handles configuration for the server component: defaults,
// a JSON overlay, environment variables (optionally from a .env file) and
// command-line flags, applied in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Config holds runtime settings for the technotes server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the REST endpoint (PORT env maps to ":<PORT>").
//   - DatabaseURI: document store connection string; mongodb:// or postgres:// selects the backend.
//   - DatabaseName: Mongo database used when the URI names none.
//   - LogsDir: directory holding reqLog.log, errLog.log and dbErrLog.log.
//   - LogLevel / LogPretty: structured console logging.
//   - AllowedOrigins: CORS allow list.
//   - SecretKey: HMAC secret for access tokens. Empty disables authentication.
//   - AccessTokenValidityDuration: access token lifetime.
//   - RateLimit / RateBurst: requests per second and burst; RateLimit 0 disables limiting.
//   - DBConnectAttempts: how many times the initial store ping is tried.
//   - ShutdownTimeout: grace period for in-flight requests on shutdown.
type Config struct {
	EndpointAddrHTTP            string
	DatabaseURI                 string        `env:"DATABASE_URI"`
	DatabaseName                string        `env:"DATABASE_NAME"`
	LogsDir                     string        `env:"LOGS_DIR"`
	LogLevel                    string        `env:"LOG_LEVEL"`
	LogPretty                   bool          `env:"LOG_PRETTY"`
	AllowedOrigins              []string      `env:"ALLOWED_ORIGINS" env-separator:","`
	SecretKey                   string        `env:"SECRET_KEY"`
	AccessTokenValidityDuration time.Duration `env:"ACCESS_TOKEN_TTL"`
	RateLimit                   float64       `env:"RATE_LIMIT"`
	RateBurst                   int           `env:"RATE_BURST"`
	DBConnectAttempts           uint          `env:"DB_CONNECT_ATTEMPTS"`
	ShutdownTimeout             time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":3500"
	c.DatabaseURI = "mongodb://localhost:27017"
	c.DatabaseName = "technotes"
	c.LogsDir = "logs"
	c.LogLevel = "info"
	c.LogPretty = false
	c.AllowedOrigins = []string{"http://localhost:3000"}
	c.SecretKey = ""
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RateLimit = 0
	c.RateBurst = 20
	c.DBConnectAttempts = 5
	c.ShutdownTimeout = 5 * time.Second
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.EndpointAddrHTTP == "" {
		errs = append(errs, errors.New("http address is empty"))
	}
	if c.DatabaseURI == "" {
		errs = append(errs, errors.New("database uri is empty"))
	}
	if c.LogsDir == "" {
		errs = append(errs, errors.New("logs dir is empty"))
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		errs = append(errs, errors.New("rate limit settings must not be negative"))
	}
	if c.DBConnectAttempts == 0 {
		errs = append(errs, errors.New("db connect attempts must be at least 1"))
	}
	return errors.Join(errs...)
}

// AuthEnabled reports whether routes are protected by access tokens.
func (c *Config) AuthEnabled() bool {
	return c.SecretKey != ""
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}
