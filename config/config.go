package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	ObjectStore ObjectStoreConfig
	Warehouse   WarehouseConfig
	Pipeline    PipelineConfig
	Recommend   RecommendConfig
	RateLimit   RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ObjectStoreConfig holds the raw-layer connection settings
type ObjectStoreConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// WarehouseConfig holds the warehouse connection settings
type WarehouseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// SourcesConfig names the raw objects the pipeline ingests. The names are
// configuration, not protocol: observed source drops use different filenames.
type SourcesConfig struct {
	Prices     string `mapstructure:"prices"`
	Ratings    string `mapstructure:"ratings"`
	Nutrition  string `mapstructure:"nutrition"`
	Limits     string `mapstructure:"limits"`
	Profiles   string `mapstructure:"profiles"`
	SideDishes string `mapstructure:"side_dishes"`
}

// ImputeRangeConfig bounds the randomized fill for one nutrition field
type ImputeRangeConfig struct {
	Min     int `mapstructure:"min"`
	Max     int `mapstructure:"max"`
	Ceiling int `mapstructure:"ceiling"`
}

// ImputeConfig groups the per-field imputation bounds. Observed pipeline
// variants use slightly different bounds, so none of these are hardcoded.
type ImputeConfig struct {
	Calories ImputeRangeConfig `mapstructure:"calories"`
	Sodium   ImputeRangeConfig `mapstructure:"sodium"`
	Protein  ImputeRangeConfig `mapstructure:"protein"`
}

// SynonymsConfig holds the column-name synonym sets used to resolve drifting
// source schemas, plus the canonical fallback names
type SynonymsConfig struct {
	Product  []string `mapstructure:"product"`
	Calories []string `mapstructure:"calories"`
	Sodium   []string `mapstructure:"sodium"`
	Protein  []string `mapstructure:"protein"`
	Brand    []string `mapstructure:"brand"`
	Variant  []string `mapstructure:"variant"`
	Price    []string `mapstructure:"price"`
	Link     []string `mapstructure:"link"`

	ProductFallback  string `mapstructure:"product_fallback"`
	CaloriesFallback string `mapstructure:"calories_fallback"`
	SodiumFallback   string `mapstructure:"sodium_fallback"`
	ProteinFallback  string `mapstructure:"protein_fallback"`
	BrandFallback    string `mapstructure:"brand_fallback"`
	VariantFallback  string `mapstructure:"variant_fallback"`
	PriceFallback    string `mapstructure:"price_fallback"`
	LinkFallback     string `mapstructure:"link_fallback"`
}

// PipelineConfig holds the batch job settings
type PipelineConfig struct {
	Sources  SourcesConfig  `mapstructure:"sources"`
	Impute   ImputeConfig   `mapstructure:"impute"`
	Synonyms SynonymsConfig `mapstructure:"synonyms"`
	Seed     int64          `mapstructure:"seed"` // 0 means time-seeded
	Debug    bool           `mapstructure:"debug"`
}

// RecommendConfig holds the serving-side tunables
type RecommendConfig struct {
	MaleCalorieDefault   float64       `mapstructure:"male_calorie_default"`
	FemaleCalorieDefault float64       `mapstructure:"female_calorie_default"`
	SodiumDefault        float64       `mapstructure:"sodium_default"`
	MaleParam            string        `mapstructure:"male_param"`
	FemaleParam          string        `mapstructure:"female_param"`
	SodiumParam          string        `mapstructure:"sodium_param"`
	HealthKeywords       []string      `mapstructure:"health_keywords"`
	PickWindow           int           `mapstructure:"pick_window"`
	Alternatives         int           `mapstructure:"alternatives"`
	DefaultMealFraction  int           `mapstructure:"default_meal_fraction"`
	SnapshotTTL          time.Duration `mapstructure:"snapshot_ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/noodlewise/")

	v.SetEnvPrefix("NOODLEWISE")
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

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
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Object store defaults
	v.SetDefault("objectstore.endpoint", "localhost:9000")
	v.SetDefault("objectstore.bucket", "raw-layer")
	v.SetDefault("objectstore.use_ssl", false)

	// Warehouse defaults
	v.SetDefault("warehouse.dsn", "postgres://localhost:5432/catalog?sslmode=disable")

	// Pipeline source keys
	v.SetDefault("pipeline.sources.prices", "product_prices.csv")
	v.SetDefault("pipeline.sources.ratings", "product_ratings.sql")
	v.SetDefault("pipeline.sources.nutrition", "nutrition_facts.csv")
	v.SetDefault("pipeline.sources.limits", "nutrition_limits.csv")
	v.SetDefault("pipeline.sources.profiles", "user_profiles.csv")
	v.SetDefault("pipeline.sources.side_dishes", "side_dishes.csv")

	// Imputation bounds
	v.SetDefault("pipeline.impute.calories.min", 320)
	v.SetDefault("pipeline.impute.calories.max", 480)
	v.SetDefault("pipeline.impute.calories.ceiling", 800)
	v.SetDefault("pipeline.impute.sodium.min", 1200)
	v.SetDefault("pipeline.impute.sodium.max", 2200)
	v.SetDefault("pipeline.impute.sodium.ceiling", 4000)
	v.SetDefault("pipeline.impute.protein.min", 4)
	v.SetDefault("pipeline.impute.protein.max", 9)
	v.SetDefault("pipeline.impute.protein.ceiling", 60)

	// Column synonyms for drifting schemas
	v.SetDefault("pipeline.synonyms.product", []string{"product", "nama"})
	v.SetDefault("pipeline.synonyms.calories", []string{"ener", "kal"})
	v.SetDefault("pipeline.synonyms.sodium", []string{"sod", "garam"})
	v.SetDefault("pipeline.synonyms.protein", []string{"prot"})
	v.SetDefault("pipeline.synonyms.brand", []string{"brand", "merek"})
	v.SetDefault("pipeline.synonyms.variant", []string{"variety", "variant"})
	v.SetDefault("pipeline.synonyms.price", []string{"price", "harga"})
	v.SetDefault("pipeline.synonyms.link", []string{"link"})
	v.SetDefault("pipeline.synonyms.product_fallback", "product_name")
	v.SetDefault("pipeline.synonyms.calories_fallback", "energy_kcal")
	v.SetDefault("pipeline.synonyms.sodium_fallback", "sodium_mg")
	v.SetDefault("pipeline.synonyms.protein_fallback", "protein_g")
	v.SetDefault("pipeline.synonyms.brand_fallback", "brand")
	v.SetDefault("pipeline.synonyms.variant_fallback", "variant")
	v.SetDefault("pipeline.synonyms.price_fallback", "price")
	v.SetDefault("pipeline.synonyms.link_fallback", "link")

	v.SetDefault("pipeline.seed", 0)
	v.SetDefault("pipeline.debug", false)

	// Recommendation defaults
	v.SetDefault("recommend.male_calorie_default", 2500.0)
	v.SetDefault("recommend.female_calorie_default", 2000.0)
	v.SetDefault("recommend.sodium_default", 2000.0)
	v.SetDefault("recommend.male_param", "laki")
	v.SetDefault("recommend.female_param", "perempuan")
	v.SetDefault("recommend.sodium_param", "garam")
	v.SetDefault("recommend.health_keywords", []string{
		"lemonilo", "fitmee", "ladang", "ashitaki", "natural", "vegan", "sehat",
	})
	v.SetDefault("recommend.pick_window", 3)
	v.SetDefault("recommend.alternatives", 10)
	v.SetDefault("recommend.default_meal_fraction", 30)
	v.SetDefault("recommend.snapshot_ttl", "5m")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Warehouse.DSN == "" {
		return fmt.Errorf("warehouse DSN is required (set NOODLEWISE_WAREHOUSE_DSN)")
	}
	if config.ObjectStore.Bucket == "" {
		return fmt.Errorf("object store bucket is required")
	}

	for name, r := range map[string]ImputeRangeConfig{
		"calories": config.Pipeline.Impute.Calories,
		"sodium":   config.Pipeline.Impute.Sodium,
		"protein":  config.Pipeline.Impute.Protein,
	} {
		if r.Min <= 0 || r.Max < r.Min || r.Ceiling < r.Max {
			return fmt.Errorf("impute bounds for %s must satisfy 0 < min <= max <= ceiling", name)
		}
	}

	if config.Recommend.PickWindow <= 0 {
		return fmt.Errorf("recommend pick window must be positive")
	}
	return nil
}
