package main

import (
	"fmt"
	"log"
	"os"

	"github.com/shopsense/backend/config"
	httpDelivery "github.com/shopsense/backend/internal/delivery/http"
	"github.com/shopsense/backend/internal/domain"
	"github.com/shopsense/backend/internal/infrastructure/cache"
	"github.com/shopsense/backend/internal/infrastructure/catalog"
	"github.com/shopsense/backend/internal/infrastructure/profile"
	"github.com/shopsense/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShopSense Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Load the product catalog
	products, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog from %s: %v", cfg.Catalog.Path, err)
	}

	store := catalog.NewStore(products)
	log.Printf("Catalog loaded: %d products from %s", len(products), cfg.Catalog.Path)

	// User profiles are optional; without them every request is anonymous
	profiles, err := profile.NewStore(cfg.Catalog.ProfilesPath, store)
	if err != nil {
		log.Printf("WARNING: profiles unavailable (%v), running without personalization", err)
		profiles = nil
	} else {
		log.Printf("Profiles loaded from %s", cfg.Catalog.ProfilesPath)
	}

	memoryCache := cache.NewMemoryCache()
	log.Printf("Reply cache TTL: %s", cfg.Cache.TTL)

	// Enable debug logging in development environment
	debug := cfg.Matching.EnableDebugLogging || cfg.Server.Environment == "development"

	matcher := usecase.NewMatcher(store, usecase.MatcherConfig{
		ScoreThreshold:     cfg.Matching.ScoreThreshold,
		MaxResults:         cfg.Matching.MaxResults,
		EnableDebugLogging: debug,
	})

	log.Printf("Matching: threshold=%.2f, max_results=%d, debug=%v",
		cfg.Matching.ScoreThreshold, cfg.Matching.MaxResults, debug)

	// Initialize usecase layer
	var profileRepo domain.ProfileRepository
	if profiles != nil {
		profileRepo = profiles
	}
	engine := usecase.NewEngine(store, matcher, profileRepo, memoryCache, usecase.EngineConfig{
		SearchLimit:        cfg.Engine.SearchLimit,
		RecommendLimit:     cfg.Engine.RecommendLimit,
		ChatRecommendLimit: cfg.Engine.ChatRecommendLimit,
		PriceQueryLimit:    cfg.Engine.PriceQueryLimit,
		CacheTTL:           cfg.Cache.TTL,
		EnableDebugLogging: debug,
	})

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(engine)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
