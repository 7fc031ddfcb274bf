package nutrition_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	"github.com/Cinemaker123/nutrition-tracker/internal/nutrition"
)

func entry(id, date string, createdMin int, m domain.Macros) domain.FoodLogEntry {
	return domain.FoodLogEntry{
		ID:        id,
		Food:      "food " + id,
		AmountG:   100,
		Macros:    m,
		EntryDate: domain.MustParseDate(date),
		CreatedAt: time.Date(2025, 1, 1, 8, createdMin, 0, 0, time.UTC),
	}
}

func TestAggregateIsolatesDates(t *testing.T) {
	entries := []domain.FoodLogEntry{
		entry("a", "2025-03-10", 0, domain.Macros{Kcal: 500, ProteinG: 30, CarbsG: 60, FatG: 10, FiberG: 5}),
		entry("b", "2025-03-09", 1, domain.Macros{Kcal: 999, ProteinG: 99, CarbsG: 99, FatG: 99, FiberG: 99}),
		entry("c", "2025-03-10", 2, domain.Macros{Kcal: 250.5, ProteinG: 12.25, CarbsG: 20, FatG: 8.5, FiberG: 1.5}),
	}

	got, err := nutrition.Aggregate(domain.MustParseDate("2025-03-10"), entries)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	want := domain.Macros{Kcal: 750.5, ProteinG: 42.25, CarbsG: 80, FatG: 18.5, FiberG: 6.5}
	if got.Macros != want {
		t.Errorf("Aggregate = %+v, want %+v", got.Macros, want)
	}
	if got.Date.String() != "2025-03-10" {
		t.Errorf("Aggregate date = %s", got.Date)
	}
}

func TestAggregateEmptyIsZero(t *testing.T) {
	got, err := nutrition.Aggregate(domain.MustParseDate("2025-03-10"), nil)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if got.Macros != (domain.Macros{}) {
		t.Errorf("expected zero totals, got %+v", got.Macros)
	}
}

func TestAggregateRejectsInvalidNumbers(t *testing.T) {
	bad := []domain.Macros{
		{Kcal: math.NaN()},
		{ProteinG: -5},
		{FiberG: math.Inf(1)},
	}
	for _, m := range bad {
		entries := []domain.FoodLogEntry{entry("x", "2025-03-10", 0, m)}
		_, err := nutrition.Aggregate(domain.MustParseDate("2025-03-10"), entries)
		if !errors.Is(err, nutrition.ErrInvalidEntry) {
			t.Errorf("Aggregate(%+v) err = %v, want ErrInvalidEntry", m, err)
		}
	}
}

func TestGroupByDateZeroFillsAndKeepsOrder(t *testing.T) {
	dates := nutrition.DatesInRange(domain.MustParseDate("2025-03-10"), 7)
	entries := []domain.FoodLogEntry{
		entry("a", "2025-03-10", 0, domain.Macros{Kcal: 100}),
		entry("b", "2025-03-05", 0, domain.Macros{Kcal: 200}),
		entry("c", "2025-02-01", 0, domain.Macros{Kcal: 300}),
	}

	got, err := nutrition.GroupByDate(entries, dates)
	if err != nil {
		t.Fatalf("GroupByDate: %v", err)
	}
	if len(got) != len(dates) {
		t.Fatalf("len = %d, want %d", len(got), len(dates))
	}
	for i, d := range got {
		if !d.Date.Equal(dates[i]) {
			t.Errorf("day %d date = %s, want %s", i, d.Date, dates[i])
		}
	}
	if got[1].Kcal != 200 || got[6].Kcal != 100 {
		t.Errorf("unexpected totals %+v", got)
	}
	for _, i := range []int{0, 2, 3, 4, 5} {
		if got[i].Macros != (domain.Macros{}) {
			t.Errorf("day %s should be zero, got %+v", got[i].Date, got[i].Macros)
		}
	}
}

func TestGroupByDateSizeMatchesRequest(t *testing.T) {
	entries := []domain.FoodLogEntry{entry("a", "2025-03-10", 0, domain.Macros{Kcal: 1})}
	for _, n := range []int{0, 1, 2, 14, 31} {
		dates := nutrition.DatesInRange(domain.MustParseDate("2025-03-10"), n)
		got, err := nutrition.GroupByDate(entries, dates)
		if err != nil {
			t.Fatalf("GroupByDate(%d): %v", n, err)
		}
		if len(got) != n {
			t.Errorf("GroupByDate(%d) returned %d days", n, len(got))
		}
	}
}

func TestBuildDaysOrdersEntriesByCreation(t *testing.T) {
	entries := []domain.FoodLogEntry{
		entry("late", "2025-03-10", 30, domain.Macros{Kcal: 1}),
		entry("early", "2025-03-10", 5, domain.Macros{Kcal: 2}),
		entry("mid", "2025-03-10", 10, domain.Macros{Kcal: 3}),
	}
	days, err := nutrition.BuildDays(entries, []domain.Date{domain.MustParseDate("2025-03-10"), domain.MustParseDate("2025-03-11")})
	if err != nil {
		t.Fatalf("BuildDays: %v", err)
	}
	ids := []string{}
	for _, e := range days[0].Entries {
		ids = append(ids, e.ID)
	}
	if len(ids) != 3 || ids[0] != "early" || ids[1] != "mid" || ids[2] != "late" {
		t.Errorf("entry order = %v", ids)
	}
	if days[1].Entries == nil || len(days[1].Entries) != 0 {
		t.Errorf("empty day should have an empty, non-nil entry list")
	}
	if nutrition.DaysWithEntries(days) != 1 {
		t.Errorf("DaysWithEntries = %d, want 1", nutrition.DaysWithEntries(days))
	}
}

func TestMultiDayTotalIsOrderIndependent(t *testing.T) {
	a := domain.DayTotals{Macros: domain.Macros{Kcal: 1800, ProteinG: 120, CarbsG: 150, FatG: 60, FiberG: 25}}
	b := domain.DayTotals{Macros: domain.Macros{Kcal: 2100.5, ProteinG: 90.5, CarbsG: 210, FatG: 70.25, FiberG: 18}}
	c := domain.DayTotals{Macros: domain.Macros{Kcal: 0, ProteinG: 0, CarbsG: 0, FatG: 0, FiberG: 0}}

	abc := nutrition.MultiDayTotal([]domain.DayTotals{a, b, c})
	cab := nutrition.MultiDayTotal([]domain.DayTotals{c, a, b})
	bca := nutrition.MultiDayTotal([]domain.DayTotals{b, c, a})
	if abc != cab || abc != bca {
		t.Errorf("order changed totals: %+v %+v %+v", abc, cab, bca)
	}
	if abc.Kcal != 3900.5 {
		t.Errorf("kcal = %v", abc.Kcal)
	}
}

func TestGaps(t *testing.T) {
	total := domain.Macros{Kcal: 4300, ProteinG: 200, CarbsG: 300, FatG: 140, FiberG: 70}
	got := nutrition.Gaps(total, domain.DefaultGoals, 2)
	want := domain.Macros{Kcal: -300, ProteinG: 140, CarbsG: 20, FatG: -10, FiberG: -10}
	if got != want {
		t.Errorf("Gaps = %+v, want %+v", got, want)
	}
}
