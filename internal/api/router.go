// Package api exposes the food log over JSON/HTTP.
package api

import (
	"net/http"

	"github.com/Cinemaker123/nutrition-tracker/internal/auth"
	apperrors "github.com/Cinemaker123/nutrition-tracker/internal/errors"
	"github.com/Cinemaker123/nutrition-tracker/internal/logger"
	"github.com/Cinemaker123/nutrition-tracker/internal/services"
	"github.com/gin-gonic/gin"
)

// Handler serves every /api route
type Handler struct {
	foodLog  *services.FoodLogService
	insights *services.InsightsService
	errs     *apperrors.Handler
}

func NewHandler(foodLog *services.FoodLogService, insights *services.InsightsService) *Handler {
	return &Handler{
		foodLog:  foodLog,
		insights: insights,
		errs:     apperrors.NewHandler(logger.GetLogger()),
	}
}

// NewRouter builds the engine. Everything under /api needs the password.
func NewRouter(h *Handler, checker *auth.Checker) *gin.Engine {
	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger())
	router.Use(Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(RequirePassword(checker))
	{
		api.GET("/entries", h.ListEntries)
		api.POST("/entries", h.CreateEntry)
		api.DELETE("/entries/:id", h.DeleteEntry)

		api.POST("/analyze", h.Analyze)
		api.GET("/summary", h.Summary)
		api.GET("/week", h.Week)

		api.POST("/analyze-7days", h.AnalyzeWeek)
		api.GET("/analyses", h.ListAnalyses)
		api.POST("/analyses", h.SaveAnalysis)
		api.DELETE("/analyses/:id", h.DeleteAnalysis)

		api.GET("/recipes", h.Recipes)
		api.GET("/recipes/archive", h.ListRecipeSets)
		api.POST("/recipes/archive", h.SaveRecipeSet)
		api.DELETE("/recipes/archive/:id", h.DeleteRecipeSet)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
	return router
}

// fail logs err and answers with its status and public message
func (h *Handler) fail(c *gin.Context, err error) {
	h.errs.Handle(c.Request.Context(), err)
	_ = c.Error(err)
	c.JSON(apperrors.HTTPStatus(err), gin.H{"error": apperrors.PublicMessage(err)})
}

func (h *Handler) badRequest(c *gin.Context, msg string) {
	h.fail(c, apperrors.NewValidationError(msg))
}
