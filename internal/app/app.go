// Package app wires storage, AI providers and services from configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Cinemaker123/nutrition-tracker/internal/config"
	"github.com/Cinemaker123/nutrition-tracker/internal/database"
	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	apperrors "github.com/Cinemaker123/nutrition-tracker/internal/errors"
	"github.com/Cinemaker123/nutrition-tracker/internal/logger"
	"github.com/Cinemaker123/nutrition-tracker/internal/repository"
	"github.com/Cinemaker123/nutrition-tracker/internal/services"
	"gorm.io/gorm"
)

// App holds the long-lived dependencies shared by the server, the bot and the CLI
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	AI       *services.AIService // nil when built without AI
	FoodLog  *services.FoodLogService
	Insights *services.InsightsService
}

type Options struct {
	// WithAI connects the configured LLM providers. Without it every AI call
	// fails with an external error.
	WithAI bool
}

// New opens the database and builds the services
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	db, err := database.Open(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	a := &App{Config: cfg, DB: db}
	var extractor domain.MacroExtractor = offlineAI{}
	var insights domain.InsightsGenerator = offlineAI{}
	if opts.WithAI {
		ai, err := services.NewAIService(ctx, cfg.AI)
		if err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("failed to initialize AI service: %w", err)
		}
		a.AI = ai
		extractor, insights = ai, ai
	}

	entries := repository.NewEntryRepository(db)
	a.FoodLog = services.NewFoodLogService(entries, extractor, cfg.Goals, cfg.Location)
	if a.AI != nil && a.AI.VisionEnabled() {
		a.FoodLog.WithPhotoExtractor(a.AI)
		logger.Debug("Photo analysis enabled", "extract_order", cfg.AI.ExtractProviders)
	}
	a.Insights = services.NewInsightsService(entries, insights,
		repository.NewAnalysisRepository(db), repository.NewRecipeRepository(db), cfg.Goals)

	logger.Info("Application initialized", "db_driver", cfg.DB.Driver, "ai", opts.WithAI)
	return a, nil
}

// Close releases the AI clients and the database
func (a *App) Close() error {
	var errs []error
	if a.AI != nil {
		errs = append(errs, a.AI.Close())
	}
	errs = append(errs, database.Close(a.DB))
	return errors.Join(errs...)
}

var errOffline = errors.New("AI providers are not configured for this command")

type offlineAI struct{}

func (offlineAI) ExtractMacros(context.Context, string) ([]domain.MacroResult, error) {
	return nil, apperrors.NewExternalAPIError(errOffline, "ai")
}

func (offlineAI) AnalyzeDays(context.Context, []domain.DayData, domain.MacroGoals) (string, error) {
	return "", apperrors.NewExternalAPIError(errOffline, "ai")
}

func (offlineAI) SuggestRecipes(context.Context, []domain.DayData, domain.MacroGoals) ([]domain.RecipeSuggestion, error) {
	return nil, apperrors.NewExternalAPIError(errOffline, "ai")
}
