package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("SHOPSENSE_SERVER_PORT")
		os.Unsetenv("SHOPSENSE_SERVER_ENVIRONMENT")
		os.Unsetenv("SHOPSENSE_CATALOG_PATH")
		os.Unsetenv("SHOPSENSE_CATALOG_PROFILES_PATH")
		os.Unsetenv("SHOPSENSE_CACHE_TTL")
		os.Unsetenv("SHOPSENSE_RATELIMIT_PER_IP")
		os.Unsetenv("SHOPSENSE_RATELIMIT_BURST")
		os.Unsetenv("SHOPSENSE_MATCHING_SCORE_THRESHOLD")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Catalog.Path != "data/products.json" {
			t.Errorf("Catalog.Path = %s, want data/products.json", cfg.Catalog.Path)
		}
		if cfg.Cache.TTL != 5*time.Minute {
			t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 20 {
			t.Errorf("RateLimit.PerIP = %d, want 20", cfg.RateLimit.PerIP)
		}
		if cfg.Matching.ScoreThreshold != 0.3 {
			t.Errorf("Matching.ScoreThreshold = %f, want 0.3", cfg.Matching.ScoreThreshold)
		}
		if cfg.Engine.SearchLimit != 8 {
			t.Errorf("Engine.SearchLimit = %d, want 8", cfg.Engine.SearchLimit)
		}
		if cfg.Engine.ChatRecommendLimit != 6 {
			t.Errorf("Engine.ChatRecommendLimit = %d, want 6", cfg.Engine.ChatRecommendLimit)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SHOPSENSE_SERVER_PORT", "9090")
		os.Setenv("SHOPSENSE_SERVER_ENVIRONMENT", "production")
		os.Setenv("SHOPSENSE_CATALOG_PATH", "/srv/catalog.json")
		os.Setenv("SHOPSENSE_CACHE_TTL", "30m")
		os.Setenv("SHOPSENSE_RATELIMIT_PER_IP", "50")
		os.Setenv("SHOPSENSE_RATELIMIT_BURST", "100")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Catalog.Path != "/srv/catalog.json" {
			t.Errorf("Catalog.Path = %s, want /srv/catalog.json", cfg.Catalog.Path)
		}
		if cfg.Cache.TTL != 30*time.Minute {
			t.Errorf("Cache.TTL = %v, want 30m", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 50 {
			t.Errorf("RateLimit.PerIP = %d, want 50", cfg.RateLimit.PerIP)
		}
		if cfg.RateLimit.Burst != 100 {
			t.Errorf("RateLimit.Burst = %d, want 100", cfg.RateLimit.Burst)
		}
	})

	t.Run("fails validation for out-of-range threshold", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("SHOPSENSE_MATCHING_SCORE_THRESHOLD", "1.5")
		defer cleanupEnv()

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want error for threshold above 1")
		}
	})
}

func TestValidate(t *testing.T) {
	validConfig := func() *Config {
		return &Config{
			Catalog:   CatalogConfig{Path: "data/products.json"},
			RateLimit: RateLimitConfig{PerIP: 20, Burst: 40},
			Matching:  MatchingConfig{ScoreThreshold: 0.3},
		}
	}

	t.Run("validates successfully with required fields", func(t *testing.T) {
		if err := validate(validConfig()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails when catalog path is empty", func(t *testing.T) {
		cfg := validConfig()
		cfg.Catalog.Path = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty catalog path")
		}
	})

	t.Run("fails for non-positive rate limit", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimit.PerIP = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for zero rate limit")
		}
	})

	t.Run("fails when burst is below per-IP rate", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimit.Burst = 5
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for burst below rate")
		}
	})
}
