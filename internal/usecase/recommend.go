package usecase

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/noodlewise/backend/internal/domain"
)

// RecommendConfig holds the serving-side tunables: reference-limit lookup
// parameters and their fallbacks, the additive-avoidance keyword allow-list,
// and ranking knobs.
type RecommendConfig struct {
	MaleCalorieDefault   float64
	FemaleCalorieDefault float64
	SodiumDefault        float64

	// Substring used to find each limit in the reference table.
	MaleParam   string
	FemaleParam string
	SodiumParam string

	// Health-branded keywords; with the additive filter active, only rows
	// whose brand or name contains one of these survive.
	HealthKeywords []string

	PickWindow          int // fitness mode picks uniformly among this many top rows
	Alternatives        int // how many ranked alternatives to return
	DefaultMealFraction int // percent of daily targets when the request omits it
}

// RecommendationService ranks catalog rows under the requested constraint
// regime and fills any protein shortfall from the side dish catalog. It is
// state-free per invocation apart from the injected random source.
type RecommendationService struct {
	store domain.CatalogStore
	cache domain.SnapshotCache
	cfg   RecommendConfig

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRecommendationService creates the service. The random source drives the
// deliberate variety of the fitness-mode top-3 pick; inject a seeded source
// to pin outcomes in tests.
func NewRecommendationService(store domain.CatalogStore, cache domain.SnapshotCache, cfg RecommendConfig, rng *rand.Rand) *RecommendationService {
	if cfg.PickWindow <= 0 {
		cfg.PickWindow = 3
	}
	if cfg.Alternatives <= 0 {
		cfg.Alternatives = 10
	}
	if cfg.DefaultMealFraction <= 0 {
		cfg.DefaultMealFraction = 30
	}
	return &RecommendationService{store: store, cache: cache, cfg: cfg, rng: rng}
}

// Recommend applies the budget, health and preference filters in order,
// ranks what survives and selects the primary pick. In fitness mode it also
// computes meal targets from the user profile and allocates supplements for
// any protein shortfall. An empty candidate set is a reportable status, not
// an error.
func (s *RecommendationService) Recommend(ctx context.Context, req domain.RecommendationRequest) (*domain.RecommendationResponse, error) {
	if req.Budget <= 0 {
		return nil, fmt.Errorf("%w: budget must be positive", domain.ErrInvalidRequest)
	}
	mode := req.Mode
	if mode == "" {
		mode = domain.ModeCheapest
	}
	switch mode {
	case domain.ModeCheapest, domain.ModePremium, domain.ModeFitness:
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidRequest, req.Mode)
	}

	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	var profile *domain.UserProfile
	if mode == domain.ModeFitness && req.Profile != "" {
		profile, err = s.store.ProfileByName(ctx, req.Profile)
		if err != nil {
			return nil, err
		}
	}

	resp := &domain.RecommendationResponse{HealthOverridden: req.IgnoreHealth}

	gender := req.Gender
	goal := domain.GoalMaintenance
	preference := "any"
	fraction := req.MealFraction
	if fraction <= 0 {
		fraction = s.cfg.DefaultMealFraction
	}
	if profile != nil {
		gender = profile.Gender
		goal = profile.Goal
		if profile.Preference != "" {
			preference = profile.Preference
		}
	}

	resp.CalorieLimit, resp.SodiumLimit = s.resolveLimits(req, snap.Limits, gender)
	if profile != nil {
		mealCalories, mealProtein := MealTargets(*profile, fraction)
		resp.CalorieLimit = float64(mealCalories)
		resp.TargetProtein = mealProtein
	}

	candidates := filterCandidates(snap.Products, req, resp.CalorieLimit, resp.SodiumLimit, s.cfg.HealthKeywords)
	resp.FilteredCount = len(candidates)

	if req.IgnoreHealth {
		resp.Statuses = append(resp.Statuses, "health filter bypassed")
	} else {
		resp.Statuses = append(resp.Statuses, "health filter active")
	}
	resp.Statuses = append(resp.Statuses, modeStatus(mode, goal))

	if len(candidates) == 0 {
		resp.Statuses = append(resp.Statuses, "no products matched the criteria")
		if !req.IgnoreHealth {
			resp.Statuses = append(resp.Statuses, "try disabling the health filter to widen the candidate set")
		}
		return resp, nil
	}

	ranked := rankCandidates(candidates, mode, goal)
	pickIdx := s.pickIndex(mode, len(ranked))
	pick := ranked[pickIdx]
	resp.Pick = &pick
	resp.Alternatives = collectAlternatives(ranked, pickIdx, s.cfg.Alternatives)

	if profile != nil {
		shortfall := float64(resp.TargetProtein - pick.Protein)
		allocation := AllocateSupplements(snap.SideDishes, req.Budget-pick.Price, shortfall, preference)
		resp.Supplement = &allocation
	}

	return resp, nil
}

// snapshot returns the cached warehouse read, loading a fresh one on miss.
func (s *RecommendationService) snapshot(ctx context.Context) (*domain.CatalogSnapshot, error) {
	if snap, ok := s.cache.Snapshot(); ok {
		return snap, nil
	}

	products, err := s.store.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: product catalog: %v", domain.ErrWarehouseFailure, err)
	}
	limits, err := s.store.Limits(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: nutrition limits: %v", domain.ErrWarehouseFailure, err)
	}
	sides, err := s.store.SideDishes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: side dishes: %v", domain.ErrWarehouseFailure, err)
	}

	snap := &domain.CatalogSnapshot{
		Products:   products,
		Limits:     limits,
		SideDishes: sides,
		LoadedAt:   time.Now(),
	}
	s.cache.Store(snap)
	log.Printf("[RECOMMEND] snapshot refreshed: %d products, %d limits, %d sides",
		len(products), len(limits), len(sides))
	return snap, nil
}

// resolveLimits binds the calorie and sodium ceilings: explicit request
// values win, then the reference table matched by substring, then the
// configured defaults.
func (s *RecommendationService) resolveLimits(req domain.RecommendationRequest, limits []domain.NutritionLimit, gender string) (calorieLimit, sodiumLimit float64) {
	calorieLimit = req.CalorieLimit
	if calorieLimit <= 0 {
		if strings.EqualFold(gender, "male") {
			calorieLimit = LookupLimit(limits, s.cfg.MaleParam, s.cfg.MaleCalorieDefault)
		} else {
			calorieLimit = LookupLimit(limits, s.cfg.FemaleParam, s.cfg.FemaleCalorieDefault)
		}
	}
	sodiumLimit = req.SodiumLimit
	if sodiumLimit <= 0 {
		sodiumLimit = LookupLimit(limits, s.cfg.SodiumParam, s.cfg.SodiumDefault)
	}
	return calorieLimit, sodiumLimit
}

// LookupLimit returns the first reference entry whose parameter contains the
// given substring (case-insensitive), falling back to the default.
func LookupLimit(limits []domain.NutritionLimit, param string, fallback float64) float64 {
	if param == "" {
		return fallback
	}
	needle := strings.ToLower(param)
	for _, limit := range limits {
		if strings.Contains(strings.ToLower(limit.Parameter), needle) {
			return limit.DailyLimit
		}
	}
	return fallback
}

// filterCandidates applies the filters in order: budget always, health
// unless overridden, then the additive keyword allow-list.
func filterCandidates(products []domain.ProductRecord, req domain.RecommendationRequest, calorieLimit, sodiumLimit float64, keywords []string) []domain.ProductRecord {
	var out []domain.ProductRecord
	for _, p := range products {
		if p.Price > req.Budget {
			continue
		}
		if !req.IgnoreHealth {
			if float64(p.Calories) > calorieLimit || float64(p.Sodium) > sodiumLimit {
				continue
			}
		}
		if req.AvoidAdditives && !matchesKeywords(p, keywords) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// matchesKeywords reports whether the product's name or brand contains any
// of the health-branded keywords.
func matchesKeywords(p domain.ProductRecord, keywords []string) bool {
	name := strings.ToLower(p.Name)
	brand := strings.ToLower(p.Brand)
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(name, kw) || strings.Contains(brand, kw) {
			return true
		}
	}
	return false
}

// rankCandidates sorts a copy of the candidates by the mode's key order.
// Fitness mode ranks by goal: bulking wants protein, cutting wants the
// lightest high-protein rows, anything else wants rating first.
func rankCandidates(candidates []domain.ProductRecord, mode, goal string) []domain.ProductRecord {
	ranked := make([]domain.ProductRecord, len(candidates))
	copy(ranked, candidates)

	var less func(a, b domain.ProductRecord) bool
	switch mode {
	case domain.ModeCheapest:
		less = func(a, b domain.ProductRecord) bool {
			if a.Price != b.Price {
				return a.Price < b.Price
			}
			return a.Rating > b.Rating
		}
	case domain.ModePremium:
		less = func(a, b domain.ProductRecord) bool {
			if a.Price != b.Price {
				return a.Price > b.Price
			}
			return a.Rating > b.Rating
		}
	default: // fitness
		switch goal {
		case domain.GoalBulking:
			less = func(a, b domain.ProductRecord) bool {
				if a.Protein != b.Protein {
					return a.Protein > b.Protein
				}
				return a.Rating > b.Rating
			}
		case domain.GoalCutting:
			less = func(a, b domain.ProductRecord) bool {
				if a.Calories != b.Calories {
					return a.Calories < b.Calories
				}
				if a.Protein != b.Protein {
					return a.Protein > b.Protein
				}
				return a.Rating > b.Rating
			}
		default:
			less = func(a, b domain.ProductRecord) bool {
				if a.Rating != b.Rating {
					return a.Rating > b.Rating
				}
				return a.Price < b.Price
			}
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool { return less(ranked[i], ranked[j]) })
	return ranked
}

// pickIndex selects the primary pick. Fitness mode draws uniformly among the
// top PickWindow rows for variety across identical runs; the other modes are
// deterministic.
func (s *RecommendationService) pickIndex(mode string, n int) int {
	if mode != domain.ModeFitness {
		return 0
	}
	window := s.cfg.PickWindow
	if n < window {
		window = n
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(window)
}

// collectAlternatives returns up to n ranked rows excluding the pick.
func collectAlternatives(ranked []domain.ProductRecord, pickIdx, n int) []domain.ProductRecord {
	var out []domain.ProductRecord
	for i, p := range ranked {
		if i == pickIdx {
			continue
		}
		out = append(out, p)
		if len(out) == n {
			break
		}
	}
	return out
}

func modeStatus(mode, goal string) string {
	switch mode {
	case domain.ModeCheapest:
		return "looking for the cheapest option within the criteria"
	case domain.ModePremium:
		return "looking for the most premium option within the criteria"
	default:
		return fmt.Sprintf("fitness ranking for goal %q", goal)
	}
}
