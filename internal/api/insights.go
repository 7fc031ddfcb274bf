package api

import (
	"net/http"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	"github.com/gin-gonic/gin"
)

type analyzeWeekRequest struct {
	EndDate string `json:"endDate"`
}

type saveAnalysisRequest struct {
	DateRange string `json:"date_range"`
	Analysis  string `json:"analysis"`
}

type saveRecipeSetRequest struct {
	DateRange    string                    `json:"date_range"`
	Suggestions  []domain.RecipeSuggestion `json:"suggestions"`
	BasedOnDates []domain.Date             `json:"based_on_dates"`
}

func (h *Handler) AnalyzeWeek(c *gin.Context) {
	var req analyzeWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}
	end, err := h.foodLog.ResolveDate(req.EndDate)
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.insights.AnalyzeWeek(c.Request.Context(), end)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListAnalyses(c *gin.Context) {
	analyses, err := h.insights.ListAnalyses(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analyses": analyses})
}

func (h *Handler) SaveAnalysis(c *gin.Context) {
	var req saveAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}
	analysis, err := h.insights.SaveAnalysis(c.Request.Context(), req.DateRange, req.Analysis)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analysis": analysis})
}

func (h *Handler) DeleteAnalysis(c *gin.Context) {
	if err := h.insights.DeleteAnalysis(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Recipes suggests meals for the day before endDate and endDate itself
func (h *Handler) Recipes(c *gin.Context) {
	end, err := h.foodLog.ResolveDate(c.Query("endDate"))
	if err != nil {
		h.fail(c, err)
		return
	}
	result, err := h.insights.SuggestRecipes(c.Request.Context(), end)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListRecipeSets(c *gin.Context) {
	sets, err := h.insights.ListRecipeSets(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": sets})
}

func (h *Handler) SaveRecipeSet(c *gin.Context) {
	var req saveRecipeSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}
	set, err := h.insights.SaveRecipeSet(c.Request.Context(), domain.ArchivedRecipeSet{
		DateRange:    req.DateRange,
		Suggestions:  req.Suggestions,
		BasedOnDates: req.BasedOnDates,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": set})
}

func (h *Handler) DeleteRecipeSet(c *gin.Context) {
	if err := h.insights.DeleteRecipeSet(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
