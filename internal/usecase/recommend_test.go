package usecase

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/noodlewise/backend/internal/domain"
)

// fakeCatalogStore serves fixed rows for recommendation tests.
type fakeCatalogStore struct {
	products []domain.ProductRecord
	limits   []domain.NutritionLimit
	profiles []domain.UserProfile
	sides    []domain.SideDish
}

func (f *fakeCatalogStore) ReplaceProducts(ctx context.Context, rows []domain.ProductRecord) error {
	f.products = rows
	return nil
}
func (f *fakeCatalogStore) Products(ctx context.Context) ([]domain.ProductRecord, error) {
	return f.products, nil
}
func (f *fakeCatalogStore) ReplaceLimits(ctx context.Context, rows []domain.NutritionLimit) error {
	f.limits = rows
	return nil
}
func (f *fakeCatalogStore) Limits(ctx context.Context) ([]domain.NutritionLimit, error) {
	return f.limits, nil
}
func (f *fakeCatalogStore) ReplaceProfiles(ctx context.Context, rows []domain.UserProfile) error {
	f.profiles = rows
	return nil
}
func (f *fakeCatalogStore) Profiles(ctx context.Context) ([]domain.UserProfile, error) {
	return f.profiles, nil
}
func (f *fakeCatalogStore) ProfileByName(ctx context.Context, name string) (*domain.UserProfile, error) {
	for _, p := range f.profiles {
		if strings.EqualFold(p.Name, name) {
			profile := p
			return &profile, nil
		}
	}
	return nil, domain.ErrProfileNotFound
}
func (f *fakeCatalogStore) ReplaceSideDishes(ctx context.Context, rows []domain.SideDish) error {
	f.sides = rows
	return nil
}
func (f *fakeCatalogStore) SideDishes(ctx context.Context) ([]domain.SideDish, error) {
	return f.sides, nil
}

// passthroughCache never caches, so every test reads the fake store.
type passthroughCache struct{}

func (passthroughCache) Snapshot() (*domain.CatalogSnapshot, bool) { return nil, false }
func (passthroughCache) Store(*domain.CatalogSnapshot)             {}
func (passthroughCache) Invalidate()                               {}

func testRecommendConfig() RecommendConfig {
	return RecommendConfig{
		MaleCalorieDefault:   2500,
		FemaleCalorieDefault: 2000,
		SodiumDefault:        2000,
		MaleParam:            "laki",
		FemaleParam:          "perempuan",
		SodiumParam:          "garam",
		HealthKeywords:       []string{"lemonilo", "natural", "vegan", "sehat"},
		PickWindow:           3,
		Alternatives:         10,
		DefaultMealFraction:  30,
	}
}

func testProducts() []domain.ProductRecord {
	return []domain.ProductRecord{
		{Brand: "Indomie", Name: "Goreng", Price: 3500, Rating: 4.8, Calories: 420, Sodium: 1500, Protein: 9},
		{Brand: "Sedaap", Name: "Soto", Price: 2800, Rating: 4.2, Calories: 380, Sodium: 1600, Protein: 8},
		{Brand: "Lemonilo", Name: "Mi Sehat", Price: 7000, Rating: 4.0, Calories: 330, Sodium: 1200, Protein: 7},
		{Brand: "Luxury", Name: "Truffle Ramen", Price: 45000, Rating: 4.9, Calories: 700, Sodium: 3500, Protein: 15},
		{Brand: "Salty", Name: "Mega Sodium", Price: 2000, Rating: 3.5, Calories: 500, Sodium: 3900, Protein: 6},
	}
}

func newTestService(store *fakeCatalogStore, seed int64) *RecommendationService {
	return NewRecommendationService(store, passthroughCache{}, testRecommendConfig(), rand.New(rand.NewSource(seed)))
}

func TestRecommend(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects non-positive budget", func(t *testing.T) {
		svc := newTestService(&fakeCatalogStore{}, 1)
		_, err := svc.Recommend(ctx, domain.RecommendationRequest{Budget: 0})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		svc := newTestService(&fakeCatalogStore{}, 1)
		_, err := svc.Recommend(ctx, domain.RecommendationRequest{Budget: 5000, Mode: "mystery"})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("never returns an item above the budget", func(t *testing.T) {
		svc := newTestService(&fakeCatalogStore{products: testProducts()}, 1)
		resp, err := svc.Recommend(ctx, domain.RecommendationRequest{Budget: 5000, Mode: domain.ModeCheapest, IgnoreHealth: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Pick == nil {
			t.Fatal("no pick")
		}
		if resp.Pick.Price > 5000 {
			t.Errorf("pick price = %d, want <= 5000", resp.Pick.Price)
		}
		for _, alt := range resp.Alternatives {
			if alt.Price > 5000 {
				t.Errorf("alternative %q price = %d, want <= 5000", alt.Name, alt.Price)
			}
		}
	})

	t.Run("health filter drops items above the limits", func(t *testing.T) {
		svc := newTestService(&fakeCatalogStore{products: testProducts()}, 1)
		resp, err := svc.Recommend(ctx, domain.RecommendationRequest{Budget: 5000, Mode: domain.ModeCheapest})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// Default limits: calories 2500, sodium 2000. Salty (3900mg) is out.
		for _, p := range append(resp.Alternatives, *resp.Pick) {
			if p.Sodium > 2000 {
				t.Errorf("%q sodium = %d, want <= 2000", p.Name, p.Sodium)
			}
		}
	})

	t.Run("health override widens an otherwise empty set", func(t *testing.T) {
		strict := []domain.ProductRecord{
			{Brand: "Salty", Name: "Mega Sodium", Price: 2000, Rating: 3.5, Calories: 500, Sodium: 3900},
		}
		svc := newTestService(&fakeCatalogStore{products: strict}, 1)

		resp, err := svc.Recommend(ctx, domain.RecommendationRequest{Budget: 5000, Mode: domain.ModeCheapest})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Pick != nil {
			t.Error("expected empty result with the health filter active")
		}
		remedy := false
		for _, s := range resp.Statuses {
			if strings.Contains(s, "disabling the health filter") {
				remedy = true
			}
		}
		if !remedy {
			t.Error("empty result should suggest disabling the health filter")
		}

		resp, err = svc.Recommend(ctx, domain.RecommendationRequest{Budget: 5000, Mode: domain.ModeCheapest, IgnoreHealth: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Pick == nil {
			t.Fatal("override active, expected a pick")
		}
		if !resp.HealthOverridden {
			t.Error("HealthOverridden = false, want true")
		}
	})

	t.Run("additive filter keeps only keyword matches", func(t *testing.T) {
		svc := newTestService(&fakeCatalogStore{products: testProducts()}, 1)
		resp, err := svc.Recommend(ctx, domain.RecommendationRequest{Budget: 10000, Mode: domain.ModeCheapest, IgnoreHealth: true, AvoidAdditives: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.FilteredCount != 1 {
			t.Fatalf("FilteredCount = %d, want 1 (only Lemonilo matches)", resp.FilteredCount)
		}
		if resp.Pick.Brand != "Lemonilo" {
			t.Errorf("pick = %q, want Lemonilo", resp.Pick.Brand)
		}
	})

	t.Run("cheapest mode picks lowest price, rating breaks ties", func(t *testing.T) {
		products := []domain.ProductRecord{
			{Brand: "A", Name: "One", Price: 3000, Rating: 3.0, Calories: 400, Sodium: 1500},
			{Brand: "B", Name: "Two", Price: 3000, Rating: 4.5, Calories: 400, Sodium: 1500},
			{Brand: "C", Name: "Three", Price: 4000, Rating: 5.0, Calories: 400, Sodium: 1500},
		}
		svc := newTestService(&fakeCatalogStore{products: products}, 1)
		resp, err := svc.Recommend(ctx, domain.RecommendationRequest{Budget: 5000, Mode: domain.ModeCheapest})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Pick.Name != "Two" {
			t.Errorf("pick = %q, want Two (cheapest, best rating)", resp.Pick.Name)
		}
	})

	t.Run("premium mode picks highest price", func(t *testing.T) {
		svc := newTestService(&fakeCatalogStore{products: testProducts()}, 1)
		resp, err := svc.Recommend(ctx, domain.RecommendationRequest{Budget: 50000, Mode: domain.ModePremium, IgnoreHealth: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Pick.Name != "Truffle Ramen" {
			t.Errorf("pick = %q, want Truffle Ramen", resp.Pick.Name)
		}
	})

	t.Run("fitness mode picks within the top three", func(t *testing.T) {
		store := &fakeCatalogStore{
			products: testProducts(),
			profiles: []domain.UserProfile{
				{Name: "budi", WeightKg: 70, HeightCm: 175, Age: 25, Gender: "male", Goal: domain.GoalBulking, Preference: "any"},
			},
		}
		svc := newTestService(store, 3)
		resp, err := svc.Recommend(ctx, domain.RecommendationRequest{
			Budget: 50000, Mode: domain.ModeFitness, Profile: "budi", IgnoreHealth: true, MealFraction: 40,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Pick == nil {
			t.Fatal("no pick")
		}
		// Bulking ranks by protein desc: Truffle 15, Indomie 9, Sedaap 8.
		topThree := map[string]bool{"Truffle Ramen": true, "Goreng": true, "Soto": true}
		if !topThree[resp.Pick.Name] {
			t.Errorf("pick = %q, want one of the top three by protein", resp.Pick.Name)
		}
		if resp.TargetProtein != 56 {
			t.Errorf("TargetProtein = %d, want 56 (40%% of 140)", resp.TargetProtein)
		}
		if resp.Supplement == nil {
			t.Error("fitness mode with a shortfall should produce an allocation")
		}
	})

	t.Run("unknown profile is an error", func(t *testing.T) {
		svc := newTestService(&fakeCatalogStore{products: testProducts()}, 1)
		_, err := svc.Recommend(ctx, domain.RecommendationRequest{Budget: 5000, Mode: domain.ModeFitness, Profile: "ghost"})
		if !errors.Is(err, domain.ErrProfileNotFound) {
			t.Errorf("error = %v, want ErrProfileNotFound", err)
		}
	})

	t.Run("reference limits override the defaults", func(t *testing.T) {
		store := &fakeCatalogStore{
			products: testProducts(),
			limits: []domain.NutritionLimit{
				{Parameter: "Garam (dewasa)", DailyLimit: 1550},
			},
		}
		svc := newTestService(store, 1)
		resp, err := svc.Recommend(ctx, domain.RecommendationRequest{Budget: 10000, Mode: domain.ModeCheapest})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.SodiumLimit != 1550 {
			t.Errorf("SodiumLimit = %v, want 1550 from the reference table", resp.SodiumLimit)
		}
		for _, p := range append(resp.Alternatives, *resp.Pick) {
			if p.Sodium > 1550 {
				t.Errorf("%q sodium = %d, want <= 1550", p.Name, p.Sodium)
			}
		}
	})
}

func TestLookupLimit(t *testing.T) {
	limits := []domain.NutritionLimit{
		{Parameter: "Kalori Laki-laki (Dewasa)", DailyLimit: 2600},
		{Parameter: "Kalori Perempuan (Dewasa)", DailyLimit: 2100},
		{Parameter: "Garam", DailyLimit: 1800},
	}

	t.Run("matches by substring", func(t *testing.T) {
		if got := LookupLimit(limits, "laki", 2500); got != 2600 {
			t.Errorf("LookupLimit(laki) = %v, want 2600", got)
		}
	})

	t.Run("falls back when absent", func(t *testing.T) {
		if got := LookupLimit(nil, "garam", 2000); got != 2000 {
			t.Errorf("LookupLimit on empty table = %v, want fallback 2000", got)
		}
	})
}
