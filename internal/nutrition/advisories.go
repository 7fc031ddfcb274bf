package nutrition

import (
	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
)

// AdvisoryKind is a stable key a client uses to dismiss one advisory
type AdvisoryKind string

const (
	AdvisorySwapCarbsForFat     AdvisoryKind = "swap_carbs_for_fat"
	AdvisorySwapFatForCarbs     AdvisoryKind = "swap_fat_for_carbs"
	AdvisorySwapCarbsForProtein AdvisoryKind = "swap_carbs_for_protein"
	AdvisorySwapFatForProtein   AdvisoryKind = "swap_fat_for_protein"
	AdvisoryProteinOnTrack      AdvisoryKind = "protein_on_track"
)

// Advisory is a cross-nutrient tradeoff hint
type Advisory struct {
	Kind    AdvisoryKind `json:"kind"`
	Message string       `json:"message"`
}

type advisoryRule struct {
	kind    AdvisoryKind
	message string
	applies func(p map[domain.Nutrient]float64) bool
}

var advisoryRules = []advisoryRule{
	{
		kind:    AdvisorySwapCarbsForFat,
		message: "Carbs are well past target while fat is low - swap some carbs for healthy fats.",
		applies: func(p map[domain.Nutrient]float64) bool {
			return p[domain.NutrientCarbs] > 120 && p[domain.NutrientFat] < 70
		},
	},
	{
		kind:    AdvisorySwapFatForCarbs,
		message: "Fat is well past target while carbs are low - swap some fat for complex carbs.",
		applies: func(p map[domain.Nutrient]float64) bool {
			return p[domain.NutrientFat] > 120 && p[domain.NutrientCarbs] < 70
		},
	},
	{
		kind:    AdvisorySwapCarbsForProtein,
		message: "Protein is behind while carbs are over target - swap some carbs for a protein source.",
		applies: func(p map[domain.Nutrient]float64) bool {
			return p[domain.NutrientProtein] < 60 && p[domain.NutrientCarbs] > 100
		},
	},
	{
		kind:    AdvisorySwapFatForProtein,
		message: "Protein is behind while fat is over target - swap some fat for a leaner protein source.",
		applies: func(p map[domain.Nutrient]float64) bool {
			return p[domain.NutrientProtein] < 60 && p[domain.NutrientFat] > 100
		},
	},
	{
		kind:    AdvisoryProteinOnTrack,
		message: "Protein is on track, so carbs and fat have room to flex for the rest of the day.",
		applies: func(p map[domain.Nutrient]float64) bool {
			return p[domain.NutrientProtein] >= 90 && (p[domain.NutrientCarbs] < 80 || p[domain.NutrientFat] < 80)
		},
	},
}

// Advisories evaluates every tradeoff rule independently against the totals and
// returns all that apply, in a fixed order.
func Advisories(totals domain.Macros, goals domain.MacroGoals) []Advisory {
	pct := Percentages(totals, goals)
	out := []Advisory{}
	for _, r := range advisoryRules {
		if r.applies(pct) {
			out = append(out, Advisory{Kind: r.kind, Message: r.message})
		}
	}
	return out
}
