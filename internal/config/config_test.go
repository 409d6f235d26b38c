package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseConfigDSN(t *testing.T) {
	tests := []struct {
		name     string
		config   DatabaseConfig
		expected string
	}{
		{
			name: "basic DSN",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "root",
				Password: "password",
				Database: "biomed",
			},
			expected: "root:password@tcp(localhost:3306)/biomed?parseTime=true&loc=UTC",
		},
		{
			name: "empty password",
			config: DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				User:     "root",
				Database: "biomed",
			},
			expected: "root:@tcp(localhost:3306)/biomed?parseTime=true&loc=UTC",
		},
		{
			name: "TLS skip-verify",
			config: DatabaseConfig{
				Host:     "db.example.com",
				Port:     3306,
				User:     "admin",
				Password: "secret",
				Database: "biomed",
				TLSMode:  "skip-verify",
			},
			expected: "admin:secret@tcp(db.example.com:3306)/biomed?parseTime=true&loc=UTC&tls=skip-verify",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.DSN())
		})
	}
}

// Note: full integration tests for Load() belong in integration tests
// because Load() relies on global state (pflag.CommandLine) which is
// difficult to test in isolation without conflicts between tests.

func TestConfigValidate(t *testing.T) {
	validConfig := func() *Config {
		return &Config{
			Database: DatabaseConfig{
				Host:         "localhost",
				Port:         3306,
				User:         "root",
				Database:     "biomed",
				MaxOpenConns: 25,
				MaxIdleConns: 5,
			},
			Server: ServerConfig{
				Port: 8080,
			},
			Observability: ObservabilityConfig{
				Logging: LoggingConfig{
					Level:  "info",
					Format: "json",
				},
			},
		}
	}

	t.Run("valid config passes validation", func(t *testing.T) {
		result := validConfig().Validate()
		assert.False(t, result.HasErrors())
		assert.Empty(t, result.Errors)
	})

	t.Run("invalid database port", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Port = 0
		result := cfg.Validate()
		assert.True(t, result.HasErrors())
		assert.Contains(t, result.Error(), "database.port")
	})

	t.Run("missing database name", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Database = ""
		result := cfg.Validate()
		assert.True(t, result.HasErrors())
		assert.Contains(t, result.Error(), "database.database")
	})

	t.Run("invalid TLS mode", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.TLSMode = "invalid"
		result := cfg.Validate()
		assert.True(t, result.HasErrors())
		assert.Contains(t, result.Error(), "database.tls_mode")
	})

	t.Run("invalid server port", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.Port = -1
		result := cfg.Validate()
		assert.True(t, result.HasErrors())
		assert.Contains(t, result.Error(), "server.port")
	})

	t.Run("oidc requires issuer and audience", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.OIDCEnabled = true
		result := cfg.Validate()
		assert.True(t, result.HasErrors())
		assert.Contains(t, result.Error(), "server.oidc_issuer_url")
		assert.Contains(t, result.Error(), "server.oidc_audience")
	})

	t.Run("invalid log level", func(t *testing.T) {
		cfg := validConfig()
		cfg.Observability.Logging.Level = "loud"
		result := cfg.Validate()
		assert.True(t, result.HasErrors())
		assert.Contains(t, result.Error(), "observability.logging.level")
	})

	t.Run("trace sample ratio out of range", func(t *testing.T) {
		cfg := validConfig()
		cfg.Observability.TraceSampleRatio = 1.5
		result := cfg.Validate()
		assert.True(t, result.HasErrors())
		assert.Contains(t, result.Error(), "observability.trace_sample_ratio")
	})

	t.Run("tracing requires OTLP endpoint", func(t *testing.T) {
		cfg := validConfig()
		cfg.Observability.TracingEnabled = true
		cfg.Observability.OTLPEndpoint = ""
		result := cfg.Validate()
		assert.True(t, result.HasErrors())
		assert.Contains(t, result.Error(), "observability.otlp_endpoint")
	})

	t.Run("graphiql warns but does not fail", func(t *testing.T) {
		cfg := validConfig()
		cfg.Server.GraphiQLEnabled = true
		result := cfg.Validate()
		assert.False(t, result.HasErrors())
		assert.NotEmpty(t, result.Warnings)
	})
}
