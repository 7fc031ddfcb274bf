package nutrition

import (
	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
)

// Status classifies a nutrient total against its goal
type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusOver Status = "over"
)

// warnShare is the fraction of the goal below which the remaining amount is "getting close"
const warnShare = 0.2

// PercentOf returns value as a percentage of goal, unclamped
func PercentOf(value, goal float64) float64 {
	return value / goal * 100
}

// Progress is PercentOf clamped to [0, 100] for progress bars
func Progress(value, goal float64) float64 {
	p := PercentOf(value, goal)
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// Remaining returns goal - value; negative means over target
func Remaining(value, goal float64) float64 {
	return goal - value
}

// Classify maps a value against its goal to ok, warn or over
func Classify(value, goal float64) Status {
	remaining := Remaining(value, goal)
	switch {
	case remaining < 0:
		return StatusOver
	case remaining < goal*warnShare:
		return StatusWarn
	default:
		return StatusOK
	}
}

// Comparison is a nutrient total measured against its goal
type Comparison struct {
	Nutrient  domain.Nutrient `json:"nutrient"`
	Value     float64         `json:"value"`
	Goal      float64         `json:"goal"`
	Percent   float64         `json:"percent"`
	Progress  float64         `json:"progress"`
	Remaining float64         `json:"remaining"`
	Status    Status          `json:"status"`
}

// Over reports whether the value exceeds the goal
func (c Comparison) Over() bool {
	return c.Remaining < 0
}

// Compare builds the Comparison for one nutrient
func Compare(n domain.Nutrient, value, goal float64) Comparison {
	return Comparison{
		Nutrient:  n,
		Value:     value,
		Goal:      goal,
		Percent:   PercentOf(value, goal),
		Progress:  Progress(value, goal),
		Remaining: Remaining(value, goal),
		Status:    Classify(value, goal),
	}
}

// CompareAll compares every nutrient of totals against goals, in display order
func CompareAll(totals domain.Macros, goals domain.MacroGoals) []Comparison {
	out := make([]Comparison, 0, len(domain.Nutrients))
	for _, n := range domain.Nutrients {
		out = append(out, Compare(n, totals.Get(n), goals.Get(n)))
	}
	return out
}

// Percentages returns PercentOf for every nutrient
func Percentages(totals domain.Macros, goals domain.MacroGoals) map[domain.Nutrient]float64 {
	out := make(map[domain.Nutrient]float64, len(domain.Nutrients))
	for _, n := range domain.Nutrients {
		out[n] = PercentOf(totals.Get(n), goals.Get(n))
	}
	return out
}
