package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Nutrient identifies one of the tracked macro fields
type Nutrient string

const (
	NutrientKcal    Nutrient = "kcal"
	NutrientProtein Nutrient = "protein"
	NutrientCarbs   Nutrient = "carbs"
	NutrientFat     Nutrient = "fat"
	NutrientFiber   Nutrient = "fiber"
)

// Nutrients lists every nutrient in display order
var Nutrients = []Nutrient{NutrientKcal, NutrientProtein, NutrientCarbs, NutrientFat, NutrientFiber}

// Label returns the human readable name
func (n Nutrient) Label() string {
	switch n {
	case NutrientKcal:
		return "Calories"
	case NutrientProtein:
		return "Protein"
	case NutrientCarbs:
		return "Carbs"
	case NutrientFat:
		return "Fat"
	case NutrientFiber:
		return "Fiber"
	default:
		return string(n)
	}
}

// Unit is "kcal" for calories and grams for everything else
func (n Nutrient) Unit() string {
	if n == NutrientKcal {
		return "kcal"
	}
	return "g"
}

func (n Nutrient) Valid() bool {
	switch n {
	case NutrientKcal, NutrientProtein, NutrientCarbs, NutrientFat, NutrientFiber:
		return true
	}
	return false
}

// ParseNutrient accepts the canonical names plus the column and LLM spellings
func ParseNutrient(s string) (Nutrient, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kcal", "calories", "calorie", "energy":
		return NutrientKcal, true
	case "protein", "protein_g":
		return NutrientProtein, true
	case "carbs", "carbs_g", "carbohydrates", "carb":
		return NutrientCarbs, true
	case "fat", "fat_g", "fats":
		return NutrientFat, true
	case "fiber", "fiber_g", "fibre":
		return NutrientFiber, true
	}
	return "", false
}

// Macros holds the five tracked nutrient amounts
type Macros struct {
	Kcal     float64 `json:"kcal"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
}

// Get returns the amount for a nutrient
func (m Macros) Get(n Nutrient) float64 {
	switch n {
	case NutrientKcal:
		return m.Kcal
	case NutrientProtein:
		return m.ProteinG
	case NutrientCarbs:
		return m.CarbsG
	case NutrientFat:
		return m.FatG
	case NutrientFiber:
		return m.FiberG
	}
	return 0
}

// Add returns the elementwise sum
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Kcal:     m.Kcal + o.Kcal,
		ProteinG: m.ProteinG + o.ProteinG,
		CarbsG:   m.CarbsG + o.CarbsG,
		FatG:     m.FatG + o.FatG,
		FiberG:   m.FiberG + o.FiberG,
	}
}

// Sub returns m - o elementwise
func (m Macros) Sub(o Macros) Macros {
	return m.Add(o.Scale(-1))
}

// Scale multiplies every field by f
func (m Macros) Scale(f float64) Macros {
	return Macros{
		Kcal:     m.Kcal * f,
		ProteinG: m.ProteinG * f,
		CarbsG:   m.CarbsG * f,
		FatG:     m.FatG * f,
		FiberG:   m.FiberG * f,
	}
}

// Validate rejects NaN, infinite and negative amounts
func (m Macros) Validate() error {
	for _, n := range Nutrients {
		v := m.Get(n)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s is not a finite number", n)
		}
		if v < 0 {
			return fmt.Errorf("%s must not be negative", n)
		}
	}
	return nil
}

// FoodLogEntry is one logged food item
type FoodLogEntry struct {
	ID      string  `json:"id"`
	Food    string  `json:"food"`
	AmountG float64 `json:"amount_g"`
	Macros
	EntryDate Date      `json:"entry_date"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the fields a stored entry must carry
func (e FoodLogEntry) Validate() error {
	if strings.TrimSpace(e.Food) == "" {
		return fmt.Errorf("food label is required")
	}
	if math.IsNaN(e.AmountG) || math.IsInf(e.AmountG, 0) || e.AmountG < 0 {
		return fmt.Errorf("amount_g must be a non-negative number")
	}
	if e.EntryDate.IsZero() {
		return fmt.Errorf("entry_date is required")
	}
	return e.Macros.Validate()
}

// DayTotals is the derived sum of all entries of one date
type DayTotals struct {
	Date Date `json:"date"`
	Macros
}

// MacroGoals are the daily targets
type MacroGoals struct {
	Macros
}

// DefaultGoals are the targets used when none are configured
var DefaultGoals = MacroGoals{Macros{Kcal: 2000, ProteinG: 170, CarbsG: 160, FatG: 65, FiberG: 30}}

// Validate requires every target to be positive
func (g MacroGoals) Validate() error {
	for _, n := range Nutrients {
		v := g.Get(n)
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("goal for %s must be a positive number, got %v", n, v)
		}
	}
	return nil
}

// DayData is one day of log data as handed to the insights collaborators
type DayData struct {
	Date    Date           `json:"date"`
	Totals  Macros         `json:"totals"`
	Entries []FoodLogEntry `json:"entries"`
}

// MacroResult is one row produced by macro extraction
type MacroResult struct {
	Food    string  `json:"food"`
	AmountG float64 `json:"amount_g"`
	Macros
}

// Entry turns the extracted row into an entry for the given date
func (r MacroResult) Entry(date Date) FoodLogEntry {
	return FoodLogEntry{
		Food:      r.Food,
		AmountG:   r.AmountG,
		Macros:    r.Macros,
		EntryDate: date,
	}
}

// Analysis is a saved multi-day coaching analysis
type Analysis struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	DateRange string    `json:"date_range"`
	Analysis  string    `json:"analysis"`
}

// MealType is either a full meal or a snack
type MealType string

const (
	MealTypeMeal  MealType = "meal"
	MealTypeSnack MealType = "snack"
)

// RecipeSuggestion is one generated recipe idea
type RecipeSuggestion struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	PrimaryMacro Nutrient `json:"primary_macro"`
	Type         MealType `json:"type"`
}

// ArchivedRecipeSet is a saved batch of suggestions
type ArchivedRecipeSet struct {
	ID           string             `json:"id"`
	CreatedAt    time.Time          `json:"created_at"`
	DateRange    string             `json:"date_range"`
	Suggestions  []RecipeSuggestion `json:"suggestions"`
	BasedOnDates []Date             `json:"based_on_dates"`
}
