package usecase

import (
	"fmt"
	"sort"

	"github.com/noodlewise/backend/internal/domain"
)

// maxUnitsPerItem caps how many units of a single side item one allocation
// may take.
const maxUnitsPerItem = 3

// Allocation statuses reported to the dashboard.
const (
	StatusTargetMet         = "protein target already met"
	StatusInsufficientFunds = "insufficient remaining funds for supplements"
	StatusShortfallClosed   = "protein shortfall closed"
	StatusShortfallOpen     = "protein shortfall partially closed"
)

// preferenceCategories maps a protein-source preference to the side dish
// categories it admits. Unknown preferences admit everything.
var preferenceCategories = map[string][]string{
	"plant":  {"plant", "vegetable", "drink", "extra"},
	"animal": {"animal", "processed", "vegetable", "drink", "extra"},
}

// AllocateSupplements greedily fills a protein shortfall from the side dish
// catalog under the remaining budget. Items are taken in descending
// protein-per-cost order; each item contributes at most maxUnitsPerItem
// units, and allocation stops as soon as the accumulated protein meets the
// shortfall.
func AllocateSupplements(sides []domain.SideDish, budget int, shortfall float64, preference string) domain.AllocationResult {
	result := domain.AllocationResult{}

	if shortfall <= 0 {
		result.Fulfilled = true
		result.Status = StatusTargetMet
		return result
	}

	candidates := filterSides(sides, budget, preference)
	if len(candidates) == 0 {
		result.Status = StatusInsufficientFunds
		return result
	}

	// Highest protein per unit of cost first.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Protein/float64(candidates[i].Price) >
			candidates[j].Protein/float64(candidates[j].Price)
	})

	remaining := budget
	for _, side := range candidates {
		if result.TotalProtein >= shortfall {
			break
		}
		quantity := remaining / side.Price
		if quantity > maxUnitsPerItem {
			quantity = maxUnitsPerItem
		}
		if quantity <= 0 {
			continue
		}

		cost := quantity * side.Price
		protein := float64(quantity) * side.Protein
		result.Items = append(result.Items, domain.AllocationItem{
			Name:      side.Name,
			Category:  side.Category,
			Quantity:  quantity,
			UnitPrice: side.Price,
			Cost:      cost,
			Protein:   protein,
		})
		remaining -= cost
		result.TotalCost += cost
		result.TotalProtein += protein
	}

	result.Fulfilled = result.TotalProtein >= shortfall
	if result.Fulfilled {
		result.Status = StatusShortfallClosed
	} else {
		result.Status = fmt.Sprintf("%s (%.1fg of %.1fg)", StatusShortfallOpen, result.TotalProtein, shortfall)
	}
	return result
}

// filterSides keeps affordable items in the categories the preference
// admits.
func filterSides(sides []domain.SideDish, budget int, preference string) []domain.SideDish {
	allowed, restricted := preferenceCategories[preference]

	var out []domain.SideDish
	for _, side := range sides {
		if side.Price <= 0 || side.Price > budget {
			continue
		}
		if restricted && !containsString(allowed, side.Category) {
			continue
		}
		out = append(out, side)
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
