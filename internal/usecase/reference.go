package usecase

import (
	"strconv"
	"strings"

	"github.com/noodlewise/backend/internal/domain"
)

// Column synonyms for the reference sources. These schemas drift less than
// the nutrition source, so the sets stay small.
var (
	limitParamSynonyms  = []string{"param"}
	limitCohortSynonyms = []string{"cohort", "kelompok"}
	limitValueSynonyms  = []string{"batas", "limit", "daily"}

	profileNameSynonyms       = []string{"name", "nama"}
	profileWeightSynonyms     = []string{"weight", "berat"}
	profileHeightSynonyms     = []string{"height", "tinggi"}
	profileAgeSynonyms        = []string{"age", "umur", "usia"}
	profileGenderSynonyms     = []string{"gender", "sex", "kelamin"}
	profileGoalSynonyms       = []string{"goal", "target"}
	profilePreferenceSynonyms = []string{"pref", "source"}

	sideNameSynonyms     = []string{"name", "nama", "item"}
	sideCategorySynonyms = []string{"categor", "kategori", "type"}
	sidePriceSynonyms    = []string{"price", "harga"}
	sideCalorieSynonyms  = []string{"calor", "kalori", "ener"}
	sideProteinSynonyms  = []string{"prot"}
)

// ParseLimits converts the nutrition reference table into limit entries.
// Rows without a parseable limit value are dropped.
func ParseLimits(t *domain.Table) []domain.NutritionLimit {
	paramCol := ResolveColumn(t.Columns, limitParamSynonyms, "parameter")
	cohortCol := ResolveColumn(t.Columns, limitCohortSynonyms, "cohort")
	valueCol := ResolveColumn(t.Columns, limitValueSynonyms, "daily_limit")

	var limits []domain.NutritionLimit
	for _, row := range t.Rows {
		value, err := strconv.ParseFloat(strings.TrimSpace(row[valueCol]), 64)
		if err != nil || value <= 0 {
			continue
		}
		limits = append(limits, domain.NutritionLimit{
			Parameter:  strings.TrimSpace(row[paramCol]),
			Cohort:     strings.TrimSpace(row[cohortCol]),
			DailyLimit: value,
		})
	}
	return limits
}

// ParseProfiles converts the user profile table. Rows without a name are
// dropped; numeric fields coerce to zero when malformed.
func ParseProfiles(t *domain.Table) []domain.UserProfile {
	nameCol := ResolveColumn(t.Columns, profileNameSynonyms, "name")
	weightCol := ResolveColumn(t.Columns, profileWeightSynonyms, "weight_kg")
	heightCol := ResolveColumn(t.Columns, profileHeightSynonyms, "height_cm")
	ageCol := ResolveColumn(t.Columns, profileAgeSynonyms, "age")
	genderCol := ResolveColumn(t.Columns, profileGenderSynonyms, "gender")
	goalCol := ResolveColumn(t.Columns, profileGoalSynonyms, "goal")
	prefCol := ResolveColumn(t.Columns, profilePreferenceSynonyms, "preference")

	var profiles []domain.UserProfile
	for _, row := range t.Rows {
		name := strings.TrimSpace(row[nameCol])
		if name == "" {
			continue
		}
		profiles = append(profiles, domain.UserProfile{
			Name:       name,
			WeightKg:   coerceFloat(row[weightCol]),
			HeightCm:   coerceFloat(row[heightCol]),
			Age:        int(coerceFloat(row[ageCol])),
			Gender:     strings.ToLower(strings.TrimSpace(row[genderCol])),
			Goal:       strings.ToLower(strings.TrimSpace(row[goalCol])),
			Preference: strings.ToLower(strings.TrimSpace(row[prefCol])),
		})
	}
	return profiles
}

// ParseSideDishes converts the side dish reference table. Rows without a
// name or a positive price are dropped: the allocator divides by unit price.
func ParseSideDishes(t *domain.Table) []domain.SideDish {
	nameCol := ResolveColumn(t.Columns, sideNameSynonyms, "name")
	categoryCol := ResolveColumn(t.Columns, sideCategorySynonyms, "category")
	priceCol := ResolveColumn(t.Columns, sidePriceSynonyms, "price")
	calorieCol := ResolveColumn(t.Columns, sideCalorieSynonyms, "calories")
	proteinCol := ResolveColumn(t.Columns, sideProteinSynonyms, "protein")

	var sides []domain.SideDish
	for _, row := range t.Rows {
		name := strings.TrimSpace(row[nameCol])
		price := CleanPrice(row[priceCol])
		if name == "" || price <= 0 {
			continue
		}
		sides = append(sides, domain.SideDish{
			Name:     name,
			Category: strings.ToLower(strings.TrimSpace(row[categoryCol])),
			Price:    price,
			Calories: int(coerceFloat(row[calorieCol])),
			Protein:  coerceFloat(row[proteinCol]),
		})
	}
	return sides
}
