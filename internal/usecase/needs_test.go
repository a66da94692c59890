package usecase

import (
	"testing"

	"github.com/noodlewise/backend/internal/domain"
)

func TestDailyNeeds(t *testing.T) {
	base := domain.UserProfile{WeightKg: 70, HeightCm: 175, Age: 25, Gender: "male"}

	t.Run("bulking male", func(t *testing.T) {
		p := base
		p.Goal = domain.GoalBulking
		// basal 1673.75, x1.55 = 2594.3125, truncated 2594, +400
		calories, protein := DailyNeeds(p)
		if calories != 2994 {
			t.Errorf("calories = %d, want 2994", calories)
		}
		if protein != 140 {
			t.Errorf("protein = %d, want 140", protein)
		}
	})

	t.Run("cutting male", func(t *testing.T) {
		p := base
		p.Goal = domain.GoalCutting
		calories, protein := DailyNeeds(p)
		if calories != 2194 {
			t.Errorf("calories = %d, want 2194", calories)
		}
		if protein != 154 {
			t.Errorf("protein = %d, want 154", protein)
		}
	})

	t.Run("maintenance is the default for unknown goals", func(t *testing.T) {
		p := base
		p.Goal = "whatever"
		calories, protein := DailyNeeds(p)
		if calories != 2594 {
			t.Errorf("calories = %d, want 2594", calories)
		}
		if protein != 112 {
			t.Errorf("protein = %d, want 112", protein)
		}
	})

	t.Run("non-male gender uses the female constant", func(t *testing.T) {
		p := domain.UserProfile{WeightKg: 60, HeightCm: 165, Age: 30, Gender: "female", Goal: domain.GoalMaintenance}
		// basal 10*60 + 6.25*165 - 5*30 - 161 = 1320.25, x1.55 = 2046.3875
		calories, protein := DailyNeeds(p)
		if calories != 2046 {
			t.Errorf("calories = %d, want 2046", calories)
		}
		if protein != 96 {
			t.Errorf("protein = %d, want 96", protein)
		}
	})
}

func TestMealTargets(t *testing.T) {
	p := domain.UserProfile{WeightKg: 70, HeightCm: 175, Age: 25, Gender: "male", Goal: domain.GoalBulking}

	t.Run("scales daily targets by the fraction", func(t *testing.T) {
		calories, protein := MealTargets(p, 50)
		if calories != 1497 {
			t.Errorf("calories = %d, want 1497", calories)
		}
		if protein != 70 {
			t.Errorf("protein = %d, want 70", protein)
		}
	})

	t.Run("invalid fraction falls back to the full day", func(t *testing.T) {
		calories, _ := MealTargets(p, 0)
		if calories != 2994 {
			t.Errorf("calories = %d, want 2994", calories)
		}
		calories, _ = MealTargets(p, 150)
		if calories != 2994 {
			t.Errorf("calories = %d, want 2994", calories)
		}
	})
}
