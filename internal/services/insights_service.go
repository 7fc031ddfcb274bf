package services

import (
	"context"
	"strings"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	apperrors "github.com/Cinemaker123/nutrition-tracker/internal/errors"
	"github.com/Cinemaker123/nutrition-tracker/internal/logger"
	"github.com/Cinemaker123/nutrition-tracker/internal/nutrition"
)

// AnalysisResult is a freshly generated, unsaved analysis
type AnalysisResult struct {
	Analysis     string `json:"analysis"`
	DaysAnalyzed int    `json:"daysAnalyzed"`
	DateRange    string `json:"dateRange"`
}

// RecipeResult is a freshly generated, unsaved set of suggestions
type RecipeResult struct {
	Suggestions  []domain.RecipeSuggestion `json:"suggestions"`
	DateRange    string                    `json:"dateRange"`
	BasedOnDates []domain.Date             `json:"basedOnDates"`
}

// recipeWindow covers the previous day and the end date
const recipeWindow = 2

type InsightsService struct {
	entries  domain.EntryStore
	ai       domain.InsightsGenerator
	analyses domain.AnalysisStore
	recipes  domain.RecipeStore
	goals    domain.MacroGoals
}

func NewInsightsService(entries domain.EntryStore, ai domain.InsightsGenerator, analyses domain.AnalysisStore, recipes domain.RecipeStore, goals domain.MacroGoals) *InsightsService {
	return &InsightsService{
		entries:  entries,
		ai:       ai,
		analyses: analyses,
		recipes:  recipes,
		goals:    goals,
	}
}

func (s *InsightsService) loadDays(ctx context.Context, dates []domain.Date) ([]domain.DayData, error) {
	entries, err := s.entries.ListByDates(ctx, dates)
	if err != nil {
		return nil, err
	}
	days, err := nutrition.BuildDays(entries, dates)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return days, nil
}

// AnalyzeWeek runs the coaching analysis over the 7 days ending at end
func (s *InsightsService) AnalyzeWeek(ctx context.Context, end domain.Date) (AnalysisResult, error) {
	if end.IsZero() {
		return AnalysisResult{}, apperrors.NewValidationError("endDate is required")
	}
	days, err := s.loadDays(ctx, nutrition.DatesInRange(end, WeekLength))
	if err != nil {
		return AnalysisResult{}, err
	}

	text, err := s.ai.AnalyzeDays(ctx, days, s.goals)
	if err != nil {
		return AnalysisResult{}, err
	}

	result := AnalysisResult{
		Analysis:     text,
		DaysAnalyzed: nutrition.DaysWithEntries(days),
		DateRange:    nutrition.RangeLabel(end, WeekLength),
	}
	logger.WithContext(ctx).Info("Generated analysis", "range", result.DateRange, "days", result.DaysAnalyzed)
	return result, nil
}

// SuggestRecipes asks for suggestions based on the day before end and end itself
func (s *InsightsService) SuggestRecipes(ctx context.Context, end domain.Date) (RecipeResult, error) {
	if end.IsZero() {
		return RecipeResult{}, apperrors.NewValidationError("endDate is required")
	}
	dates := nutrition.DatesInRange(end, recipeWindow)
	days, err := s.loadDays(ctx, dates)
	if err != nil {
		return RecipeResult{}, err
	}

	suggestions, err := s.ai.SuggestRecipes(ctx, days, s.goals)
	if err != nil {
		return RecipeResult{}, err
	}
	return RecipeResult{
		Suggestions:  suggestions,
		DateRange:    nutrition.RangeLabel(end, recipeWindow),
		BasedOnDates: dates,
	}, nil
}

func (s *InsightsService) ListAnalyses(ctx context.Context) ([]domain.Analysis, error) {
	return s.analyses.List(ctx)
}

// SaveAnalysis archives an analysis the user chose to keep
func (s *InsightsService) SaveAnalysis(ctx context.Context, dateRange, text string) (domain.Analysis, error) {
	dateRange = strings.TrimSpace(dateRange)
	text = strings.TrimSpace(text)
	if dateRange == "" || text == "" {
		return domain.Analysis{}, apperrors.NewValidationError("date_range and analysis are required")
	}
	return s.analyses.Create(ctx, domain.Analysis{DateRange: dateRange, Analysis: text})
}

func (s *InsightsService) DeleteAnalysis(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewValidationError("id is required")
	}
	return s.analyses.Delete(ctx, id)
}

func (s *InsightsService) ListRecipeSets(ctx context.Context) ([]domain.ArchivedRecipeSet, error) {
	return s.recipes.List(ctx)
}

// SaveRecipeSet archives a set of suggestions
func (s *InsightsService) SaveRecipeSet(ctx context.Context, set domain.ArchivedRecipeSet) (domain.ArchivedRecipeSet, error) {
	set.ID = ""
	set.Suggestions = append([]domain.RecipeSuggestion(nil), set.Suggestions...)
	set.DateRange = strings.TrimSpace(set.DateRange)
	if set.DateRange == "" {
		return domain.ArchivedRecipeSet{}, apperrors.NewValidationError("date_range is required")
	}
	if len(set.Suggestions) == 0 {
		return domain.ArchivedRecipeSet{}, apperrors.NewValidationError("suggestions are required")
	}
	for i, sg := range set.Suggestions {
		if strings.TrimSpace(sg.Name) == "" {
			return domain.ArchivedRecipeSet{}, apperrors.NewValidationError("every suggestion needs a name")
		}
		if !sg.PrimaryMacro.Valid() {
			set.Suggestions[i].PrimaryMacro = domain.NutrientProtein
		}
		if sg.Type != domain.MealTypeSnack {
			set.Suggestions[i].Type = domain.MealTypeMeal
		}
	}
	for _, d := range set.BasedOnDates {
		if d.IsZero() {
			return domain.ArchivedRecipeSet{}, apperrors.NewValidationError("based_on_dates must be YYYY-MM-DD dates")
		}
	}
	return s.recipes.Create(ctx, set)
}

func (s *InsightsService) DeleteRecipeSet(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewValidationError("id is required")
	}
	return s.recipes.Delete(ctx, id)
}
