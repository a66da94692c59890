package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/noodlewise/backend/internal/domain"
)

// ImputeRange bounds the randomized fill for one nutrition field. A value is
// invalid when it is <= 0 or exceeds Ceiling; invalid values are replaced by
// a uniform random integer in [Min, Max].
type ImputeRange struct {
	Min     int
	Max     int
	Ceiling int
}

// SynonymConfig carries the column synonym sets for the drifting source
// schemas plus the canonical fallback names. Product/Calories/Sodium/Protein
// locate nutrition fields; Brand/Variant/Price/Link locate pricing fields.
type SynonymConfig struct {
	Product  []string
	Calories []string
	Sodium   []string
	Protein  []string
	Brand    []string
	Variant  []string
	Price    []string
	Link     []string

	ProductFallback  string
	CaloriesFallback string
	SodiumFallback   string
	ProteinFallback  string
	BrandFallback    string
	VariantFallback  string
	PriceFallback    string
	LinkFallback     string
}

// PipelineConfig holds everything the batch job treats as configuration:
// source object keys, imputation bounds and synonym sets. Observed source
// variants differ in bounds and filenames, so none of this is hardcoded.
type PipelineConfig struct {
	PriceKey     string
	RatingKey    string
	NutritionKey string
	LimitsKey    string
	ProfilesKey  string
	SideDishKey  string

	Calories ImputeRange
	Sodium   ImputeRange
	Protein  ImputeRange

	Synonyms SynonymConfig
}

// PipelineSummary reports what a run produced.
type PipelineSummary struct {
	RunID      string
	Products   int
	Limits     int
	Profiles   int
	SideDishes int
}

// PipelineService is the single-writer batch job: load the raw sources,
// merge them under normalized keys, clean and impute values, and replace the
// warehouse tables wholesale. It must not run in parallel instances against
// the same target tables.
type PipelineService struct {
	loader *SourceLoader
	store  domain.CatalogStore
	cfg    PipelineConfig
	rng    *rand.Rand
}

// NewPipelineService creates the batch pipeline. The random source is
// injected so imputation is reproducible under a fixed seed.
func NewPipelineService(loader *SourceLoader, store domain.CatalogStore, cfg PipelineConfig, rng *rand.Rand) *PipelineService {
	return &PipelineService{loader: loader, store: store, cfg: cfg, rng: rng}
}

// Run executes one full refresh. The three catalog sources are mandatory;
// reference sources degrade gracefully when absent. Any warehouse write
// failure is fatal for the run, with no rollback of tables already written.
func (s *PipelineService) Run(ctx context.Context) (*PipelineSummary, error) {
	summary := &PipelineSummary{RunID: uuid.NewString()}
	log.Printf("[PIPELINE] run %s started", summary.RunID)

	prices, err := s.loader.LoadDelimited(ctx, s.cfg.PriceKey)
	if err != nil {
		return nil, err
	}
	ratings, err := s.loader.LoadRatingDump(ctx, s.cfg.RatingKey)
	if err != nil {
		return nil, err
	}
	nutrition, err := s.loader.LoadDelimited(ctx, s.cfg.NutritionKey)
	if err != nil {
		return nil, err
	}

	products := BuildCatalog(ratings, prices, nutrition, s.cfg, s.rng)
	log.Printf("[PIPELINE] run %s: %d catalog rows after merge and price filter", summary.RunID, len(products))

	if err := s.store.ReplaceProducts(ctx, products); err != nil {
		return nil, fmt.Errorf("%w: product catalog: %v", domain.ErrWarehouseFailure, err)
	}
	summary.Products = len(products)

	if n, err := s.replaceLimits(ctx); err != nil {
		return nil, err
	} else {
		summary.Limits = n
	}
	if n, err := s.replaceProfiles(ctx); err != nil {
		return nil, err
	} else {
		summary.Profiles = n
	}
	if n, err := s.replaceSideDishes(ctx); err != nil {
		return nil, err
	} else {
		summary.SideDishes = n
	}

	log.Printf("[PIPELINE] run %s finished: products=%d limits=%d profiles=%d sides=%d",
		summary.RunID, summary.Products, summary.Limits, summary.Profiles, summary.SideDishes)
	return summary, nil
}

func (s *PipelineService) replaceLimits(ctx context.Context) (int, error) {
	table, err := s.loader.LoadDelimited(ctx, s.cfg.LimitsKey)
	if err != nil {
		if errors.Is(err, domain.ErrSourceUnavailable) {
			log.Printf("[PIPELINE] limits source absent, keeping defaults: %v", err)
			return 0, nil
		}
		return 0, err
	}
	limits := ParseLimits(table)
	if err := s.store.ReplaceLimits(ctx, limits); err != nil {
		return 0, fmt.Errorf("%w: nutrition limits: %v", domain.ErrWarehouseFailure, err)
	}
	return len(limits), nil
}

func (s *PipelineService) replaceProfiles(ctx context.Context) (int, error) {
	table, err := s.loader.LoadDelimited(ctx, s.cfg.ProfilesKey)
	if err != nil {
		if errors.Is(err, domain.ErrSourceUnavailable) {
			log.Printf("[PIPELINE] profiles source absent, skipping: %v", err)
			return 0, nil
		}
		return 0, err
	}
	profiles := ParseProfiles(table)
	if err := s.store.ReplaceProfiles(ctx, profiles); err != nil {
		return 0, fmt.Errorf("%w: user profiles: %v", domain.ErrWarehouseFailure, err)
	}
	return len(profiles), nil
}

func (s *PipelineService) replaceSideDishes(ctx context.Context) (int, error) {
	table, err := s.loader.LoadDelimited(ctx, s.cfg.SideDishKey)
	if err != nil {
		if errors.Is(err, domain.ErrSourceUnavailable) {
			log.Printf("[PIPELINE] side dish source absent, skipping: %v", err)
			return 0, nil
		}
		return 0, err
	}
	sides := ParseSideDishes(table)
	if err := s.store.ReplaceSideDishes(ctx, sides); err != nil {
		return 0, fmt.Errorf("%w: side dishes: %v", domain.ErrWarehouseFailure, err)
	}
	return len(sides), nil
}

// BuildCatalog merges the three sources into catalog rows: left join ratings
// against prices and deduplicated nutrition on the normalized key, resolve
// the drifting nutrition columns, clean and impute values, then keep only
// rows with a resolvable positive price. The price is the filtering anchor:
// every surviving row traces to exactly one price-source row.
func BuildCatalog(ratings, prices, nutrition *domain.Table, cfg PipelineConfig, rng *rand.Rand) []domain.ProductRecord {
	syn := cfg.Synonyms
	brandCol := ResolveColumn(prices.Columns, syn.Brand, syn.BrandFallback)
	variantCol := ResolveColumn(prices.Columns, syn.Variant, syn.VariantFallback)
	priceCol := ResolveColumn(prices.Columns, syn.Price, syn.PriceFallback)
	linkCol := ResolveColumn(prices.Columns, syn.Link, syn.LinkFallback)
	prices.AddColumn(linkCol, "-")

	type priceEntry struct {
		price int
		link  string
	}
	priceByKey := make(map[string]priceEntry, prices.Len())
	for _, row := range prices.Rows {
		key := JoinKey(row[brandCol], row[variantCol])
		if _, seen := priceByKey[key]; !seen {
			priceByKey[key] = priceEntry{price: CleanPrice(row[priceCol]), link: row[linkCol]}
		}
	}

	productCol := ResolveColumn(nutrition.Columns, syn.Product, syn.ProductFallback)
	calorieCol := ResolveColumn(nutrition.Columns, syn.Calories, syn.CaloriesFallback)
	sodiumCol := ResolveColumn(nutrition.Columns, syn.Sodium, syn.SodiumFallback)
	proteinCol := ResolveColumn(nutrition.Columns, syn.Protein, syn.ProteinFallback)

	// First occurrence wins; source row order is the only tie-break.
	nutritionByKey := make(map[string]map[string]string, nutrition.Len())
	for _, row := range nutrition.Rows {
		key := normalizeKey(row[productCol])
		if _, seen := nutritionByKey[key]; !seen {
			nutritionByKey[key] = row
		}
	}

	var records []domain.ProductRecord
	for _, row := range ratings.Rows {
		key := JoinKey(row["brand"], row["variant"])

		record := domain.ProductRecord{
			Brand:   row["brand"],
			Name:    row["variant"],
			Country: row["country"],
			Rating:  coerceFloat(row["stars"]),
			Link:    "-",
		}

		if entry, ok := priceByKey[key]; ok {
			record.Price = entry.price
			if entry.link != "" {
				record.Link = entry.link
			}
		}

		var calories, sodium, protein float64
		if nutritionRow, ok := nutritionByKey[key]; ok {
			calories = coerceFloat(nutritionRow[calorieCol])
			sodium = coerceFloat(nutritionRow[sodiumCol])
			protein = coerceFloat(nutritionRow[proteinCol])
		}
		record.Calories = imputeValue(calories, cfg.Calories, rng)
		record.Sodium = imputeValue(sodium, cfg.Sodium, rng)
		record.Protein = imputeValue(protein, cfg.Protein, rng)

		// Rows without a resolvable price never enter the catalog.
		if record.Price <= 0 {
			continue
		}
		records = append(records, record)
	}
	return records
}

// JoinKey derives the composite matching key: lowercased, trimmed brand and
// variant joined by a single space.
func JoinKey(brand, variant string) string {
	return normalizeKey(strings.TrimSpace(brand) + " " + strings.TrimSpace(variant))
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CleanPrice strips the currency symbol and separator characters from a raw
// price string and parses the remainder. Unparsable values become 0 and are
// dropped later by the positive-price filter.
func CleanPrice(raw string) int {
	cleaned := strings.TrimSpace(raw)
	for _, noise := range []string{"Rp", "rp", "RP", ".", ",", " "} {
		cleaned = strings.ReplaceAll(cleaned, noise, "")
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return int(value)
}

// coerceFloat maps any non-numeric or missing value to 0 so it becomes
// subject to imputation.
func coerceFloat(raw string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return value
}

// imputeValue passes plausible values through unchanged and replaces
// missing or implausible ones with a uniform random integer from the
// configured range.
func imputeValue(value float64, r ImputeRange, rng *rand.Rand) int {
	if value > 0 && value <= float64(r.Ceiling) {
		return int(value)
	}
	return r.Min + rng.Intn(r.Max-r.Min+1)
}
