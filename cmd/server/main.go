package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/noodlewise/backend/config"
	httpDelivery "github.com/noodlewise/backend/internal/delivery/http"
	"github.com/noodlewise/backend/internal/infrastructure/cache"
	"github.com/noodlewise/backend/internal/infrastructure/warehouse"
	"github.com/noodlewise/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting NoodleWise Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	store, err := warehouse.New(cfg.Warehouse.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to warehouse: %v", err)
	}
	defer store.Close()
	log.Printf("Warehouse connected")

	snapshotCache := cache.NewSnapshotCache(cfg.Recommend.SnapshotTTL)
	log.Printf("Snapshot TTL: %s", cfg.Recommend.SnapshotTTL)

	// Initialize usecase layer
	recommender := usecase.NewRecommendationService(
		store,
		snapshotCache,
		usecase.RecommendConfig{
			MaleCalorieDefault:   cfg.Recommend.MaleCalorieDefault,
			FemaleCalorieDefault: cfg.Recommend.FemaleCalorieDefault,
			SodiumDefault:        cfg.Recommend.SodiumDefault,
			MaleParam:            cfg.Recommend.MaleParam,
			FemaleParam:          cfg.Recommend.FemaleParam,
			SodiumParam:          cfg.Recommend.SodiumParam,
			HealthKeywords:       cfg.Recommend.HealthKeywords,
			PickWindow:           cfg.Recommend.PickWindow,
			Alternatives:         cfg.Recommend.Alternatives,
			DefaultMealFraction:  cfg.Recommend.DefaultMealFraction,
		},
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)

	log.Printf("Recommendation: pick_window=%d, alternatives=%d, keywords=%d",
		cfg.Recommend.PickWindow,
		cfg.Recommend.Alternatives,
		len(cfg.Recommend.HealthKeywords))

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(recommender, store)

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
