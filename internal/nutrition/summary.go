package nutrition

import (
	"time"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
)

// NutrientReport is everything shown for one nutrient of a day
type NutrientReport struct {
	Comparison
	Label   string  `json:"label"`
	Unit    string  `json:"unit"`
	Message Message `json:"message"`
}

// DaySummary is the derived view of one logged day
type DaySummary struct {
	Date       domain.Date      `json:"date"`
	Hour       int              `json:"hour"`
	EntryCount int              `json:"entry_count"`
	Totals     domain.Macros    `json:"totals"`
	Goals      domain.Macros    `json:"goals"`
	Nutrients  []NutrientReport `json:"nutrients"`
	Advisories []Advisory       `json:"advisories"`
}

// Summarize aggregates the entries of date and derives comparisons, coaching
// messages and advisories as of the given hour.
func Summarize(date domain.Date, entries []domain.FoodLogEntry, goals domain.MacroGoals, hour int) (DaySummary, error) {
	totals, err := Aggregate(date, entries)
	if err != nil {
		return DaySummary{}, err
	}

	count := 0
	for _, e := range entries {
		if e.EntryDate.Equal(date) {
			count++
		}
	}
	hasEntries := count > 0

	reports := make([]NutrientReport, 0, len(domain.Nutrients))
	for _, c := range CompareAll(totals.Macros, goals) {
		reports = append(reports, NutrientReport{
			Comparison: c,
			Label:      c.Nutrient.Label(),
			Unit:       c.Nutrient.Unit(),
			Message:    SelectMessage(c.Nutrient, c.Value, c.Goal, hour, hasEntries),
		})
	}

	return DaySummary{
		Date:       date,
		Hour:       hour,
		EntryCount: count,
		Totals:     totals.Macros,
		Goals:      goals.Macros,
		Nutrients:  reports,
		Advisories: Advisories(totals.Macros, goals),
	}, nil
}

// EvaluationHour is the hour a day's coaching is evaluated at: the current hour
// for today, the end of day for past dates and midnight for future dates.
func EvaluationHour(date domain.Date, now time.Time, loc *time.Location) int {
	today := DateAt(now, loc)
	switch {
	case date.Before(today):
		return 23
	case date.After(today):
		return 0
	}
	if loc == nil {
		loc = time.Local
	}
	return now.In(loc).Hour()
}
