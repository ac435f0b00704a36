package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validProductionConfig() *Config {
	return &Config{
		Port:       "8460",
		Env:        "production",
		JWTSecret:  strings.Repeat("s", 32),
		TokenTTL:   time.Hour,
		DBPassword: "a-strong-password",
		DBSSLMode:  "require",
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid production config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing port",
			mutate:  func(c *Config) { c.Port = "" },
			wantErr: "PORT is required",
		},
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.JWTSecret = "" },
			wantErr: "JWT_SECRET is required",
		},
		{
			name:    "non-positive token ttl",
			mutate:  func(c *Config) { c.TokenTTL = 0 },
			wantErr: "TOKEN_TTL must be positive",
		},
		{
			name:    "default secret rejected in production",
			mutate:  func(c *Config) { c.JWTSecret = "dev-secret-change-in-production" },
			wantErr: "must be changed from the default",
		},
		{
			name:    "short secret rejected in production",
			mutate:  func(c *Config) { c.JWTSecret = "short" },
			wantErr: "at least 32 characters",
		},
		{
			name:    "default db password rejected in production",
			mutate:  func(c *Config) { c.DBPassword = "inkwell" },
			wantErr: "strong DB_PASSWORD",
		},
		{
			name: "development tolerates weak values",
			mutate: func(c *Config) {
				c.Env = "development"
				c.JWTSecret = "short"
				c.DBPassword = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validProductionConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestIsProduction(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Config{Env: "production"}).IsProduction())
	assert.True(t, (&Config{Env: "prod"}).IsProduction())
	assert.False(t, (&Config{Env: "development"}).IsProduction())
	assert.False(t, (&Config{Env: "test"}).IsProduction())
	assert.False(t, (&Config{}).IsProduction())
}
