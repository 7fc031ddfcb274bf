package handlers

import (
	"time"

	"github.com/Cinemaker123/nutrition-tracker/internal/auth"
	"github.com/Cinemaker123/nutrition-tracker/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	FoodLog  interfaces.FoodLogServiceInterface
	Insights interfaces.InsightsServiceInterface
	Files    interfaces.FileFetcher
	Password *auth.Checker
	AuthTTL  time.Duration
}
