package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/cypherlabdev/cashout-simulator-service/internal/models"
)

// Config holds all configuration for cashout-simulator-service
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Kafka       KafkaConfig       `mapstructure:"kafka"`
	Redis       RedisConfig       `mapstructure:"redis"`
	MemoryCache MemoryCacheConfig `mapstructure:"memory_cache"`
	Engine      EngineConfig      `mapstructure:"engine"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	Brokers      []string `mapstructure:"brokers" validate:"required_if=Enabled true"`
	Topic        string   `mapstructure:"topic" validate:"required_if=Enabled true"`         // betslip submissions to consume
	ResultsTopic string   `mapstructure:"results_topic" validate:"required_if=Enabled true"` // evaluations to publish
	GroupID      string   `mapstructure:"group_id" validate:"required_if=Enabled true"`
}

// RedisConfig holds Redis configuration. When disabled the service caches in process.
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr" validate:"required_if=Enabled true"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db" validate:"min=0"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// MemoryCacheConfig holds in-process cache configuration
type MemoryCacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// EngineConfig holds scenario engine parameters
type EngineConfig struct {
	MaxUnknownLegs                int           `mapstructure:"max_unknown_legs" validate:"min=1,max=12"`
	MaxSettlements                int           `mapstructure:"max_settlements" validate:"min=1"`
	Timeout                       time.Duration `mapstructure:"timeout" validate:"gte=0"`
	EnumeratePlacedWithoutEachWay bool          `mapstructure:"enumerate_placed_without_each_way"`
}

// RateLimitConfig throttles the evaluation endpoint. Zero requests per second disables it.
type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gte=0"`
	Burst             int     `mapstructure:"burst" validate:"min=1"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)

	v.SetDefault("kafka.enabled", true)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.topic", "betslip_submissions")
	v.SetDefault("kafka.results_topic", "betslip_evaluations")
	v.SetDefault("kafka.group_id", "cashout-simulator")

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 30*time.Minute)

	v.SetDefault("memory_cache.ttl", 30*time.Minute)

	v.SetDefault("engine.max_unknown_legs", 10)
	v.SetDefault("engine.max_settlements", 2_000_000)
	v.SetDefault("engine.timeout", 10*time.Second)
	v.SetDefault("engine.enumerate_placed_without_each_way", false)

	v.SetDefault("rate_limit.requests_per_second", 50.0)
	v.SetDefault("rate_limit.burst", 100)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Read config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvPrefix("CASHOUT_SIMULATOR")
	v.AutomaticEnv()
	// Replace . with _ for environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks ranges and required fields
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ToEngineParams converts config to scenario engine parameters
func (c *EngineConfig) ToEngineParams() models.EngineParams {
	return models.EngineParams{
		MaxUnknownLegs:                c.MaxUnknownLegs,
		MaxSettlements:                c.MaxSettlements,
		Timeout:                       c.Timeout,
		EnumeratePlacedWithoutEachWay: c.EnumeratePlacedWithoutEachWay,
	}
}
