package nutrition

import (
	"math"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
)

const (
	proteinLateHour      = 16
	kcalLateHour         = 22
	proteinLateShare     = 50.0
	proteinLowShare      = 30.0
	kcalUnderFueledShare = 50.0
)

// Message is the coaching line shown under a nutrient's progress bar
type Message struct {
	Text   string `json:"text"`
	Status Status `json:"status"`
}

// SelectMessage picks the coaching message for one nutrient. hour is the local
// hour of day (0-23) the day is evaluated at. The first matching rule wins.
func SelectMessage(n domain.Nutrient, value, goal float64, hour int, hasAnyEntriesToday bool) Message {
	remaining := Remaining(value, goal)
	pct := PercentOf(value, goal)

	if remaining < 0 {
		over := FormatAmount(n, math.Abs(remaining))
		switch n {
		case domain.NutrientKcal:
			return Message{Text: over + " over target - maintenance calories hit", Status: StatusOver}
		case domain.NutrientFiber:
			// fiber overage is never a problem
			return Message{Text: over + " over target", Status: StatusOK}
		default:
			return Message{Text: over + " over target", Status: StatusOver}
		}
	}

	left := FormatAmount(n, remaining)
	switch {
	case n == domain.NutrientProtein && hasAnyEntriesToday && pct < proteinLateShare && hour >= proteinLateHour:
		return Message{Text: left + " still needed - prioritize protein in remaining meals", Status: StatusWarn}
	case n == domain.NutrientProtein && pct < proteinLowShare:
		return Message{Text: left + " remaining - muscle loss risk", Status: StatusWarn}
	case n == domain.NutrientKcal && hasAnyEntriesToday && pct < kcalUnderFueledShare && hour >= kcalLateHour:
		return Message{Text: left + " remaining - under-fueled for the day", Status: StatusWarn}
	}
	return Message{Text: left + " remaining", Status: StatusOK}
}
