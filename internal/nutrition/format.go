package nutrition

import (
	"fmt"
	"math"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
)

// FormatAmount rounds to the nearest whole unit for display: "300 kcal", "25g"
func FormatAmount(n domain.Nutrient, v float64) string {
	rounded := math.Round(v)
	if rounded == 0 {
		rounded = 0 // avoid "-0"
	}
	if n == domain.NutrientKcal {
		return fmt.Sprintf("%.0f kcal", rounded)
	}
	return fmt.Sprintf("%.0f%s", rounded, n.Unit())
}

// FormatOneDecimal rounds to one decimal place for display
func FormatOneDecimal(v float64) string {
	r := math.Round(v*10) / 10
	if r == 0 {
		r = 0
	}
	return fmt.Sprintf("%.1f", r)
}
