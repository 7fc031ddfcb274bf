package nutrition

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
)

// ErrInvalidEntry is returned when an entry carries numbers the aggregator cannot sum
var ErrInvalidEntry = errors.New("invalid food log entry")

// Aggregate sums the entries logged on date. Entries of other dates are ignored.
func Aggregate(date domain.Date, entries []domain.FoodLogEntry) (domain.DayTotals, error) {
	totals := domain.DayTotals{Date: date}
	for _, e := range entries {
		if !e.EntryDate.Equal(date) {
			continue
		}
		if err := e.Macros.Validate(); err != nil {
			return domain.DayTotals{}, fmt.Errorf("%w %q: %v", ErrInvalidEntry, e.ID, err)
		}
		totals.Macros = totals.Macros.Add(e.Macros)
	}
	return totals, nil
}

// GroupByDate returns one DayTotals per requested date, in the requested order.
// Dates without entries are zero-filled.
func GroupByDate(entries []domain.FoodLogEntry, dates []domain.Date) ([]domain.DayTotals, error) {
	days, err := BuildDays(entries, dates)
	if err != nil {
		return nil, err
	}
	totals := make([]domain.DayTotals, len(days))
	for i, d := range days {
		totals[i] = domain.DayTotals{Date: d.Date, Macros: d.Totals}
	}
	return totals, nil
}

// BuildDays groups entries per requested date keeping each day's entries in
// logging order.
func BuildDays(entries []domain.FoodLogEntry, dates []domain.Date) ([]domain.DayData, error) {
	byDate := make(map[domain.Date][]domain.FoodLogEntry, len(dates))
	for _, e := range entries {
		byDate[e.EntryDate] = append(byDate[e.EntryDate], e)
	}

	days := make([]domain.DayData, 0, len(dates))
	for _, date := range dates {
		dayEntries := append([]domain.FoodLogEntry(nil), byDate[date]...)
		sort.SliceStable(dayEntries, func(i, j int) bool {
			return dayEntries[i].CreatedAt.Before(dayEntries[j].CreatedAt)
		})
		totals, err := Aggregate(date, dayEntries)
		if err != nil {
			return nil, err
		}
		if dayEntries == nil {
			dayEntries = []domain.FoodLogEntry{}
		}
		days = append(days, domain.DayData{Date: date, Totals: totals.Macros, Entries: dayEntries})
	}
	return days, nil
}

// MultiDayTotal sums day totals. The result carries no date.
func MultiDayTotal(days []domain.DayTotals) domain.DayTotals {
	var total domain.DayTotals
	for _, d := range days {
		total.Macros = total.Macros.Add(d.Macros)
	}
	return total
}

// Gaps returns goal*dayCount - total per nutrient; negative values are overages.
func Gaps(total domain.Macros, goals domain.MacroGoals, dayCount int) domain.Macros {
	return goals.Macros.Scale(float64(dayCount)).Sub(total)
}

// DaysWithEntries counts the days that have at least one entry
func DaysWithEntries(days []domain.DayData) int {
	n := 0
	for _, d := range days {
		if len(d.Entries) > 0 {
			n++
		}
	}
	return n
}
