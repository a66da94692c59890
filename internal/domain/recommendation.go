package domain

// Recommendation modes.
const (
	ModeCheapest = "cheapest" // lowest price first
	ModePremium  = "premium"  // highest price first
	ModeFitness  = "fitness"  // goal-dependent ranking with a randomized top pick
)

// Fitness goals.
const (
	GoalBulking     = "bulking"
	GoalCutting     = "cutting"
	GoalMaintenance = "maintenance"
)

// RecommendationRequest is the structured request the dashboard sends.
type RecommendationRequest struct {
	Budget         int     `json:"budget" binding:"required"`
	Mode           string  `json:"mode"`
	Profile        string  `json:"profile,omitempty"` // user profile name, fitness mode
	Gender         string  `json:"gender,omitempty"`  // fallback when no profile is given
	IgnoreHealth   bool    `json:"ignoreHealth"`
	AvoidAdditives bool    `json:"avoidAdditives"`
	MealFraction   int     `json:"mealFraction,omitempty"` // percent of daily targets per meal
	CalorieLimit   float64 `json:"calorieLimit,omitempty"` // explicit remaining-calorie budget
	SodiumLimit    float64 `json:"sodiumLimit,omitempty"`  // explicit remaining-sodium budget
}

// RecommendationResponse is the structured result consumed by the dashboard.
// Pick is nil when no candidate survives filtering; that is a reportable
// status, not an error.
type RecommendationResponse struct {
	FilteredCount    int               `json:"filteredCount"`
	Pick             *ProductRecord    `json:"pick,omitempty"`
	Alternatives     []ProductRecord   `json:"alternatives,omitempty"`
	HealthOverridden bool              `json:"healthOverridden"`
	CalorieLimit     float64           `json:"calorieLimit"`
	SodiumLimit      float64           `json:"sodiumLimit"`
	TargetProtein    int               `json:"targetProtein,omitempty"` // per-meal grams, fitness mode
	Supplement       *AllocationResult `json:"supplement,omitempty"`
	Statuses         []string          `json:"statuses"`
}

// AllocationItem is one allocated side item: quantity, spend and protein
// contributed.
type AllocationItem struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
	UnitPrice int     `json:"unitPrice"`
	Cost      int     `json:"cost"`
	Protein   float64 `json:"protein"` // total grams contributed
}

// AllocationResult is the outcome of the greedy supplement allocation.
type AllocationResult struct {
	Items        []AllocationItem `json:"items"`
	TotalProtein float64          `json:"totalProtein"`
	TotalCost    int              `json:"totalCost"`
	Fulfilled    bool             `json:"fulfilled"`
	Status       string           `json:"status"`
}
