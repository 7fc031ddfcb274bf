package domain_test

import (
	"math"
	"testing"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
)

func TestMacrosValidate(t *testing.T) {
	tests := []struct {
		name    string
		m       domain.Macros
		wantErr bool
	}{
		{"zero", domain.Macros{}, false},
		{"positive", domain.Macros{Kcal: 100, ProteinG: 5, CarbsG: 10, FatG: 2, FiberG: 1}, false},
		{"negative", domain.Macros{FatG: -1}, true},
		{"nan", domain.Macros{ProteinG: math.NaN()}, true},
		{"inf", domain.Macros{Kcal: math.Inf(1)}, true},
	}
	for _, tt := range tests {
		err := tt.m.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() err = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestGoalsValidate(t *testing.T) {
	if err := domain.DefaultGoals.Validate(); err != nil {
		t.Fatalf("default goals invalid: %v", err)
	}
	g := domain.DefaultGoals
	g.FiberG = 0
	if err := g.Validate(); err == nil {
		t.Error("expected zero fiber goal to be rejected")
	}
}

func TestEntryValidate(t *testing.T) {
	ok := domain.FoodLogEntry{
		Food:      "oats",
		AmountG:   50,
		Macros:    domain.Macros{Kcal: 190, ProteinG: 6.5, CarbsG: 33, FatG: 3.5, FiberG: 5},
		EntryDate: domain.MustParseDate("2025-03-10"),
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}

	noFood := ok
	noFood.Food = "  "
	if err := noFood.Validate(); err == nil {
		t.Error("expected empty food to be rejected")
	}

	noDate := ok
	noDate.EntryDate = domain.Date{}
	if err := noDate.Validate(); err == nil {
		t.Error("expected missing date to be rejected")
	}
}

func TestParseNutrient(t *testing.T) {
	tests := map[string]domain.Nutrient{
		"calories": domain.NutrientKcal,
		"Protein":  domain.NutrientProtein,
		"carbs_g":  domain.NutrientCarbs,
		" fat ":    domain.NutrientFat,
		"fibre":    domain.NutrientFiber,
	}
	for in, want := range tests {
		got, ok := domain.ParseNutrient(in)
		if !ok || got != want {
			t.Errorf("ParseNutrient(%q) = %q, %v; want %q", in, got, ok, want)
		}
	}
	if _, ok := domain.ParseNutrient("sugar"); ok {
		t.Error("sugar is not a tracked nutrient")
	}
}

func TestMacrosArithmetic(t *testing.T) {
	a := domain.Macros{Kcal: 100, ProteinG: 10, CarbsG: 20, FatG: 5, FiberG: 2}
	b := domain.Macros{Kcal: 50, ProteinG: 1, CarbsG: 2, FatG: 3, FiberG: 4}

	if got := a.Add(b); got != (domain.Macros{Kcal: 150, ProteinG: 11, CarbsG: 22, FatG: 8, FiberG: 6}) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (domain.Macros{Kcal: 50, ProteinG: 9, CarbsG: 18, FatG: 2, FiberG: -2}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := b.Scale(2).Get(domain.NutrientFiber); got != 8 {
		t.Errorf("Scale fiber = %v", got)
	}
}
