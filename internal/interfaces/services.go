package interfaces

import (
	"context"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	"github.com/Cinemaker123/nutrition-tracker/internal/nutrition"
	"github.com/Cinemaker123/nutrition-tracker/internal/services"
)

// FoodLogServiceInterface defines the food log operations the bot uses
type FoodLogServiceInterface interface {
	Today() domain.Date
	Goals() domain.MacroGoals
	ListEntries(ctx context.Context, date domain.Date) ([]domain.FoodLogEntry, error)
	AnalyzeText(ctx context.Context, text string, date domain.Date) ([]domain.FoodLogEntry, error)
	AnalyzePhoto(ctx context.Context, image []byte, mime, caption string, date domain.Date) ([]domain.FoodLogEntry, error)
	PhotosEnabled() bool
	DeleteEntry(ctx context.Context, id string) error
	Summary(ctx context.Context, date domain.Date, hour *int) (nutrition.DaySummary, error)
	Week(ctx context.Context, end domain.Date) ([]domain.DayTotals, string, error)
}

// FileFetcher downloads a file a user sent to the bot
type FileFetcher interface {
	Fetch(ctx context.Context, fileID string) (data []byte, mime string, err error)
}

// InsightsServiceInterface defines the LLM backed insights
type InsightsServiceInterface interface {
	AnalyzeWeek(ctx context.Context, end domain.Date) (services.AnalysisResult, error)
	SuggestRecipes(ctx context.Context, end domain.Date) (services.RecipeResult, error)
}

var (
	_ FoodLogServiceInterface  = (*services.FoodLogService)(nil)
	_ InsightsServiceInterface = (*services.InsightsService)(nil)
)
