package domain

import "time"

// ProductRecord is one row of the merged product catalog: pricing, rating and
// nutrition facts reconciled under a single normalized key. Records are
// immutable once written; the pipeline rebuilds the whole table on every run.
type ProductRecord struct {
	Brand    string  `json:"brand"`
	Name     string  `json:"name"`
	Country  string  `json:"country"`
	Price    int     `json:"price"`    // currency-normalized, whole units
	Rating   float64 `json:"rating"`   // 0-5
	Calories int     `json:"calories"` // kcal per serving
	Sodium   int     `json:"sodium"`   // mg per serving
	Protein  int     `json:"protein"`  // g per serving
	Link     string  `json:"link"`
}

// NutritionLimit is a reference row binding a free-text parameter name to a
// recommended daily ceiling. Parameters are matched by case-insensitive
// substring, so "Laki-laki (Dewasa)" satisfies a lookup for "laki".
type NutritionLimit struct {
	Parameter  string  `json:"parameter"`
	Cohort     string  `json:"cohort,omitempty"`
	DailyLimit float64 `json:"dailyLimit"`
}

// UserProfile holds a user's anthropometrics and stated goal. TargetCalories
// and TargetProtein are derived values; the needs calculator recomputes them
// and they are never treated as authoritative input.
type UserProfile struct {
	Name           string  `json:"name"`
	WeightKg       float64 `json:"weightKg"`
	HeightCm       float64 `json:"heightCm"`
	Age            int     `json:"age"`
	Gender         string  `json:"gender"`     // "male" / "female"
	Goal           string  `json:"goal"`       // "bulking" / "cutting" / "maintenance"
	Preference     string  `json:"preference"` // "plant" / "animal" / "any"
	TargetCalories int     `json:"targetCalories"`
	TargetProtein  int     `json:"targetProtein"`
}

// SideDish is one item of the static supplement catalog used to close a
// protein shortfall after the primary pick.
type SideDish struct {
	Name     string  `json:"name"`
	Category string  `json:"category"` // plant, animal, processed, vegetable, drink, extra
	Price    int     `json:"price"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"` // g per unit
}

// CatalogSnapshot is a point-in-time read of the warehouse tables the
// recommendation path needs. Snapshots are cached between requests and
// rebuilt after the TTL expires.
type CatalogSnapshot struct {
	Products   []ProductRecord
	Limits     []NutritionLimit
	SideDishes []SideDish
	LoadedAt   time.Time
}
