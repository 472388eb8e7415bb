package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig writes a YAML config into a temp dir and returns its path
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestLoadConfig_Defaults tests loading configuration with default values
func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")

	require.NoError(t, err)
	require.NotNil(t, config)

	// Server
	assert.Equal(t, 8082, config.Server.Port)
	assert.Equal(t, 30*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, config.Server.WriteTimeout)

	// Kafka
	assert.True(t, config.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "betslip_submissions", config.Kafka.Topic)
	assert.Equal(t, "betslip_evaluations", config.Kafka.ResultsTopic)
	assert.Equal(t, "cashout-simulator", config.Kafka.GroupID)

	// Caches
	assert.True(t, config.Redis.Enabled)
	assert.Equal(t, "localhost:6379", config.Redis.Addr)
	assert.Equal(t, 0, config.Redis.DB)
	assert.Equal(t, 30*time.Minute, config.Redis.TTL)
	assert.Equal(t, 30*time.Minute, config.MemoryCache.TTL)

	// Engine
	assert.Equal(t, 10, config.Engine.MaxUnknownLegs)
	assert.Equal(t, 2_000_000, config.Engine.MaxSettlements)
	assert.Equal(t, 10*time.Second, config.Engine.Timeout)
	assert.False(t, config.Engine.EnumeratePlacedWithoutEachWay)

	// Rate limit
	assert.Equal(t, 50.0, config.RateLimit.RequestsPerSecond)
	assert.Equal(t, 100, config.RateLimit.Burst)

	// Logging
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "json", config.Logging.Format)
}

// TestLoadConfig_WithFile tests loading configuration from file
func TestLoadConfig_WithFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  read_timeout: 45s
  write_timeout: 45s

kafka:
  enabled: true
  brokers:
    - broker1:9092
    - broker2:9092
  topic: slips
  results_topic: slip_results
  group_id: test_group

redis:
  enabled: false

memory_cache:
  ttl: 5m

engine:
  max_unknown_legs: 8
  enumerate_placed_without_each_way: true

rate_limit:
  requests_per_second: 5
  burst: 10

logging:
  level: debug
  format: console
`)

	config, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, 45*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "slips", config.Kafka.Topic)
	assert.Equal(t, "slip_results", config.Kafka.ResultsTopic)
	assert.False(t, config.Redis.Enabled)
	assert.Equal(t, 5*time.Minute, config.MemoryCache.TTL)
	assert.Equal(t, 8, config.Engine.MaxUnknownLegs)
	assert.True(t, config.Engine.EnumeratePlacedWithoutEachWay)
	assert.Equal(t, 5.0, config.RateLimit.RequestsPerSecond)
	assert.Equal(t, 10, config.RateLimit.Burst)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "console", config.Logging.Format)
}

// TestLoadConfig_InvalidFile tests loading from a missing file
func TestLoadConfig_InvalidFile(t *testing.T) {
	config, err := LoadConfig("/nonexistent/path/config.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config file")
}

// TestLoadConfig_MalformedFile tests loading a file that is not YAML
func TestLoadConfig_MalformedFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: [unterminated\n")

	config, err := LoadConfig(path)

	assert.Error(t, err)
	assert.Nil(t, config)
}

// TestLoadConfig_PartialFile tests that unspecified keys keep their defaults
func TestLoadConfig_PartialFile(t *testing.T) {
	path := writeConfig(t, "engine:\n  max_unknown_legs: 6\n")

	config, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 6, config.Engine.MaxUnknownLegs)
	assert.Equal(t, 8082, config.Server.Port)
	assert.Equal(t, "betslip_submissions", config.Kafka.Topic)
}

// TestLoadConfig_EnvironmentVariables tests environment overrides
func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("CASHOUT_SIMULATOR_SERVER_PORT", "7777")
	t.Setenv("CASHOUT_SIMULATOR_REDIS_ADDR", "env-redis:6379")
	t.Setenv("CASHOUT_SIMULATOR_KAFKA_ENABLED", "false")
	t.Setenv("CASHOUT_SIMULATOR_ENGINE_MAX_UNKNOWN_LEGS", "12")

	config, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, 7777, config.Server.Port)
	assert.Equal(t, "env-redis:6379", config.Redis.Addr)
	assert.False(t, config.Kafka.Enabled)
	assert.Equal(t, 12, config.Engine.MaxUnknownLegs)
}

// TestLoadConfig_Validation tests that out of range values are rejected
func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown leg limit above hard cap", "engine:\n  max_unknown_legs: 13\n"},
		{"unknown leg limit zero", "engine:\n  max_unknown_legs: 0\n"},
		{"settlement budget zero", "engine:\n  max_settlements: 0\n"},
		{"negative engine timeout", "engine:\n  timeout: -1s\n"},
		{"bad log level", "logging:\n  level: loud\n"},
		{"bad log format", "logging:\n  format: xml\n"},
		{"kafka without brokers", "kafka:\n  enabled: true\n  brokers: []\n"},
		{"redis without address", "redis:\n  enabled: true\n  addr: \"\"\n"},
		{"negative rate", "rate_limit:\n  requests_per_second: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfig(writeConfig(t, tt.content))

			assert.Error(t, err)
			assert.Nil(t, config)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

// TestLoadConfig_DisabledKafkaNeedsNoBrokers tests conditional requirements
func TestLoadConfig_DisabledKafkaNeedsNoBrokers(t *testing.T) {
	path := writeConfig(t, "kafka:\n  enabled: false\n  brokers: []\n  topic: \"\"\n")

	config, err := LoadConfig(path)

	require.NoError(t, err)
	assert.False(t, config.Kafka.Enabled)
}

// TestToEngineParams tests conversion to engine parameters
func TestToEngineParams(t *testing.T) {
	cfg := EngineConfig{
		MaxUnknownLegs:                7,
		MaxSettlements:                5000,
		Timeout:                       2 * time.Second,
		EnumeratePlacedWithoutEachWay: true,
	}

	params := cfg.ToEngineParams()

	assert.Equal(t, 7, params.MaxUnknownLegs)
	assert.Equal(t, 5000, params.MaxSettlements)
	assert.Equal(t, 2*time.Second, params.Timeout)
	assert.True(t, params.EnumeratePlacedWithoutEachWay)
}
