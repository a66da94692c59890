package usecase

import (
	"strings"

	"github.com/noodlewise/backend/internal/domain"
)

// activityFactor is the fixed daily-expenditure multiplier applied to the
// basal rate. It is deliberately not configurable per user.
const activityFactor = 1.55

// Goal adjustments: calorie delta and protein grams per kg of body weight.
const (
	bulkingCalorieDelta = 400
	cuttingCalorieDelta = -400

	bulkingProteinPerKg     = 2.0
	cuttingProteinPerKg     = 2.2
	maintenanceProteinPerKg = 1.6
)

// DailyNeeds derives the daily calorie and protein targets from a profile's
// anthropometrics and goal, truncated to integers.
//
// Basal rate follows Mifflin-St Jeor: 10w + 6.25h - 5a, +5 for male and
// -161 otherwise. Daily expenditure is basal x 1.55; the goal then shifts
// calories and sets protein per kg of body weight.
func DailyNeeds(p domain.UserProfile) (calories, protein int) {
	basal := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if strings.EqualFold(p.Gender, "male") {
		basal += 5
	} else {
		basal -= 161
	}
	expenditure := int(basal * activityFactor)

	switch strings.ToLower(p.Goal) {
	case domain.GoalBulking:
		return expenditure + bulkingCalorieDelta, int(bulkingProteinPerKg * p.WeightKg)
	case domain.GoalCutting:
		return expenditure + cuttingCalorieDelta, int(cuttingProteinPerKg * p.WeightKg)
	default:
		return expenditure, int(maintenanceProteinPerKg * p.WeightKg)
	}
}

// MealTargets scales the daily targets down to a single meal. fraction is a
// percentage (e.g. 30 means one meal carries 30% of the daily targets);
// values outside (0, 100] fall back to 100.
func MealTargets(p domain.UserProfile, fraction int) (calories, protein int) {
	daily, dailyProtein := DailyNeeds(p)
	if fraction <= 0 || fraction > 100 {
		fraction = 100
	}
	return daily * fraction / 100, dailyProtein * fraction / 100
}
