package main

import (
	"context"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/noodlewise/backend/config"
	"github.com/noodlewise/backend/internal/infrastructure/objectstore"
	"github.com/noodlewise/backend/internal/infrastructure/warehouse"
	"github.com/noodlewise/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting NoodleWise pipeline")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Bucket: %s", cfg.ObjectStore.Bucket)

	ctx := context.Background()

	// Initialize infrastructure dependencies
	objects, err := objectstore.NewClient(objectstore.Config{
		Endpoint:  cfg.ObjectStore.Endpoint,
		AccessKey: cfg.ObjectStore.AccessKey,
		SecretKey: cfg.ObjectStore.SecretKey,
		Bucket:    cfg.ObjectStore.Bucket,
		UseSSL:    cfg.ObjectStore.UseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to object store: %v", err)
	}
	if err := objects.EnsureBucket(ctx); err != nil {
		log.Fatalf("Failed to ensure bucket: %v", err)
	}

	store, err := warehouse.New(cfg.Warehouse.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to warehouse: %v", err)
	}
	defer store.Close()
	log.Printf("Warehouse connected")

	loader := usecase.NewSourceLoader(objects)
	if cfg.Pipeline.Debug || cfg.Server.Environment == "development" {
		loader.SetDebug(true)
		log.Printf("Loader debug mode enabled")
	}

	seed := cfg.Pipeline.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	pipeline := usecase.NewPipelineService(loader, store, usecase.PipelineConfig{
		PriceKey:     cfg.Pipeline.Sources.Prices,
		RatingKey:    cfg.Pipeline.Sources.Ratings,
		NutritionKey: cfg.Pipeline.Sources.Nutrition,
		LimitsKey:    cfg.Pipeline.Sources.Limits,
		ProfilesKey:  cfg.Pipeline.Sources.Profiles,
		SideDishKey:  cfg.Pipeline.Sources.SideDishes,
		Calories: usecase.ImputeRange{
			Min:     cfg.Pipeline.Impute.Calories.Min,
			Max:     cfg.Pipeline.Impute.Calories.Max,
			Ceiling: cfg.Pipeline.Impute.Calories.Ceiling,
		},
		Sodium: usecase.ImputeRange{
			Min:     cfg.Pipeline.Impute.Sodium.Min,
			Max:     cfg.Pipeline.Impute.Sodium.Max,
			Ceiling: cfg.Pipeline.Impute.Sodium.Ceiling,
		},
		Protein: usecase.ImputeRange{
			Min:     cfg.Pipeline.Impute.Protein.Min,
			Max:     cfg.Pipeline.Impute.Protein.Max,
			Ceiling: cfg.Pipeline.Impute.Protein.Ceiling,
		},
		Synonyms: usecase.SynonymConfig{
			Product:  cfg.Pipeline.Synonyms.Product,
			Calories: cfg.Pipeline.Synonyms.Calories,
			Sodium:   cfg.Pipeline.Synonyms.Sodium,
			Protein:  cfg.Pipeline.Synonyms.Protein,
			Brand:    cfg.Pipeline.Synonyms.Brand,
			Variant:  cfg.Pipeline.Synonyms.Variant,
			Price:    cfg.Pipeline.Synonyms.Price,
			Link:     cfg.Pipeline.Synonyms.Link,

			ProductFallback:  cfg.Pipeline.Synonyms.ProductFallback,
			CaloriesFallback: cfg.Pipeline.Synonyms.CaloriesFallback,
			SodiumFallback:   cfg.Pipeline.Synonyms.SodiumFallback,
			ProteinFallback:  cfg.Pipeline.Synonyms.ProteinFallback,
			BrandFallback:    cfg.Pipeline.Synonyms.BrandFallback,
			VariantFallback:  cfg.Pipeline.Synonyms.VariantFallback,
			PriceFallback:    cfg.Pipeline.Synonyms.PriceFallback,
			LinkFallback:     cfg.Pipeline.Synonyms.LinkFallback,
		},
	}, rng)

	summary, err := pipeline.Run(ctx)
	if err != nil {
		log.Fatalf("Pipeline run failed: %v", err)
	}

	log.Printf("Pipeline run %s complete: products=%d limits=%d profiles=%d sides=%d",
		summary.RunID, summary.Products, summary.Limits, summary.Profiles, summary.SideDishes)
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
