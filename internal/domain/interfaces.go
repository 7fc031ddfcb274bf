package domain

import (
	"context"
)

// EntryStore persists food log entries
type EntryStore interface {
	ListByDate(ctx context.Context, date Date) ([]FoodLogEntry, error)
	ListByDates(ctx context.Context, dates []Date) ([]FoodLogEntry, error)
	Create(ctx context.Context, entries ...FoodLogEntry) ([]FoodLogEntry, error)
	Delete(ctx context.Context, id string) error
}

// AnalysisStore persists saved analyses
type AnalysisStore interface {
	List(ctx context.Context) ([]Analysis, error)
	Create(ctx context.Context, analysis Analysis) (Analysis, error)
	Delete(ctx context.Context, id string) error
}

// RecipeStore persists saved recipe sets
type RecipeStore interface {
	List(ctx context.Context) ([]ArchivedRecipeSet, error)
	Create(ctx context.Context, set ArchivedRecipeSet) (ArchivedRecipeSet, error)
	Delete(ctx context.Context, id string) error
}

// MacroExtractor turns a free-text food description into macro rows
type MacroExtractor interface {
	ExtractMacros(ctx context.Context, text string) ([]MacroResult, error)
}

// PhotoExtractor reads macro rows off a meal photo
type PhotoExtractor interface {
	ExtractMacrosFromImage(ctx context.Context, image []byte, mime, caption string) ([]MacroResult, error)
}

// InsightsGenerator produces prose analyses and recipe suggestions from day data
type InsightsGenerator interface {
	AnalyzeDays(ctx context.Context, days []DayData, goals MacroGoals) (string, error)
	SuggestRecipes(ctx context.Context, days []DayData, goals MacroGoals) ([]RecipeSuggestion, error)
}
