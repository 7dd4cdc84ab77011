package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-d", "postgres://u:p@db:5432/notes", "-n", "notes",
				"-l", "/var/log/technotes", "-s", "secret", "-o", "http://a.test, http://b.test",
			},
			expected: &Config{
				EndpointAddrHTTP:            "127.0.0.1:9090",
				DatabaseURI:                 "postgres://u:p@db:5432/notes",
				DatabaseName:                "notes",
				LogsDir:                     "/var/log/technotes",
				SecretKey:                   "secret",
				AllowedOrigins:              []string{"http://a.test", "http://b.test"},
				AccessTokenValidityDuration: time.Minute,
			},
		},
		{
			name: "foreign flags are ignored",
			args: []string{"-c", "cfg.json", "-x", "1", "-a=:8080"},
			expected: &Config{
				EndpointAddrHTTP:            ":8080",
				AllowedOrigins:              []string{"http://localhost:3000"},
				AccessTokenValidityDuration: time.Minute,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{
				AllowedOrigins:              []string{"http://localhost:3000"},
				AccessTokenValidityDuration: time.Minute,
			}

			err := parseFlags(config, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
