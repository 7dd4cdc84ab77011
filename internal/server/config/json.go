package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/technotes/internal/flagx"
	"github.com/dmitrijs2005/technotes/internal/timex"
)

// JsonConfig mirrors Config for JSON files. Durations use timex.Duration so
// both "15m" and integer nanoseconds are accepted. Pointer fields distinguish
// "absent" from an explicit zero.
type JsonConfig struct {
	EndpointAddrHTTP            string          `json:"endpoint_addr_http"`
	DatabaseURI                 string          `json:"database_uri"`
	DatabaseName                string          `json:"database_name"`
	LogsDir                     string          `json:"logs_dir"`
	LogLevel                    string          `json:"log_level"`
	LogPretty                   *bool           `json:"log_pretty"`
	AllowedOrigins              []string        `json:"allowed_origins"`
	SecretKey                   string          `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	RateLimit                   *float64        `json:"rate_limit"`
	RateBurst                   *int            `json:"rate_burst"`
	DBConnectAttempts           *uint           `json:"db_connect_attempts"`
	ShutdownTimeout             *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the file named by -c/-config. Without the
// flag nothing happens; keys missing from the file keep their current value.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseURI, c.DatabaseURI)
	setString(&config.DatabaseName, c.DatabaseName)
	setString(&config.LogsDir, c.LogsDir)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.SecretKey, c.SecretKey)

	if c.LogPretty != nil {
		config.LogPretty = *c.LogPretty
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RateLimit != nil {
		config.RateLimit = *c.RateLimit
	}
	if c.RateBurst != nil {
		config.RateBurst = *c.RateBurst
	}
	if c.DBConnectAttempts != nil {
		config.DBConnectAttempts = *c.DBConnectAttempts
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}

	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
