package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Matching  MatchingConfig
	Engine    EngineConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds product catalog data sources
type CatalogConfig struct {
	Path         string `mapstructure:"path"`
	ProfilesPath string `mapstructure:"profiles_path"`
}

// CacheConfig holds reply cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds per-client rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per second
	Burst int `mapstructure:"burst"`
}

// MatchingConfig holds fuzzy matching configuration
type MatchingConfig struct {
	ScoreThreshold     float64 `mapstructure:"score_threshold"`
	MaxResults         int     `mapstructure:"max_results"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// EngineConfig holds query engine result limits
type EngineConfig struct {
	SearchLimit        int `mapstructure:"search_limit"`
	RecommendLimit     int `mapstructure:"recommend_limit"`
	ChatRecommendLimit int `mapstructure:"chat_recommend_limit"`
	PriceQueryLimit    int `mapstructure:"price_query_limit"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shopsense/")

	// Environment variable settings
	v.SetEnvPrefix("SHOPSENSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Catalog defaults
	v.SetDefault("catalog.path", "data/products.json")
	v.SetDefault("catalog.profiles_path", "data/users.json")

	// Cache defaults
	v.SetDefault("cache.ttl", "5m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 20)
	v.SetDefault("ratelimit.burst", 40)

	// Matching defaults
	v.SetDefault("matching.score_threshold", 0.3)
	v.SetDefault("matching.max_results", 8)
	v.SetDefault("matching.enable_debug_logging", false)

	// Engine defaults
	v.SetDefault("engine.search_limit", 8)
	v.SetDefault("engine.recommend_limit", 4)
	v.SetDefault("engine.chat_recommend_limit", 6)
	v.SetDefault("engine.price_query_limit", 6)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required (set SHOPSENSE_CATALOG_PATH)")
	}

	if config.Matching.ScoreThreshold < 0 || config.Matching.ScoreThreshold > 1 {
		return fmt.Errorf("matching score threshold must be between 0 and 1, got: %f", config.Matching.ScoreThreshold)
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("rate limit per IP must be positive, got: %d", config.RateLimit.PerIP)
	}

	if config.RateLimit.Burst < config.RateLimit.PerIP {
		return fmt.Errorf("rate limit burst must be at least per-IP rate, got: %d", config.RateLimit.Burst)
	}

	return nil
}
