package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	"github.com/gin-gonic/gin"
)

// CreateEntryRequest is a manually entered entry. entry_date defaults to today;
// every numeric field is required, an explicit 0 included.
type CreateEntryRequest struct {
	Food      string   `json:"food"`
	AmountG   *float64 `json:"amount_g"`
	Kcal      *float64 `json:"kcal"`
	ProteinG  *float64 `json:"protein_g"`
	CarbsG    *float64 `json:"carbs_g"`
	FatG      *float64 `json:"fat_g"`
	FiberG    *float64 `json:"fiber_g"`
	EntryDate string   `json:"entry_date"`
}

// missing lists the numeric fields absent from the request body
func (r CreateEntryRequest) missing() []string {
	var out []string
	for _, f := range []struct {
		name string
		v    *float64
	}{
		{"amount_g", r.AmountG},
		{"kcal", r.Kcal},
		{"protein_g", r.ProteinG},
		{"carbs_g", r.CarbsG},
		{"fat_g", r.FatG},
		{"fiber_g", r.FiberG},
	} {
		if f.v == nil {
			out = append(out, f.name)
		}
	}
	return out
}

// AnalyzeRequest carries the free-text food description
type AnalyzeRequest struct {
	Text string `json:"text"`
	Date string `json:"date"`
}

func (h *Handler) ListEntries(c *gin.Context) {
	date, err := h.foodLog.ResolveDate(c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}
	entries, err := h.foodLog.ListEntries(c.Request.Context(), date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *Handler) CreateEntry(c *gin.Context) {
	var req CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}
	if missing := req.missing(); len(missing) > 0 {
		h.badRequest(c, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}
	date, err := h.foodLog.ResolveDate(req.EntryDate)
	if err != nil {
		h.fail(c, err)
		return
	}

	entry, err := h.foodLog.AddEntry(c.Request.Context(), domain.FoodLogEntry{
		Food:    req.Food,
		AmountG: *req.AmountG,
		Macros: domain.Macros{
			Kcal:     *req.Kcal,
			ProteinG: *req.ProteinG,
			CarbsG:   *req.CarbsG,
			FatG:     *req.FatG,
			FiberG:   *req.FiberG,
		},
		EntryDate: date,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"entry": entry})
}

func (h *Handler) DeleteEntry(c *gin.Context) {
	if err := h.foodLog.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Analyze extracts macros from text and stores every resulting row
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.badRequest(c, "Food description is required")
		return
	}
	date, err := h.foodLog.ResolveDate(req.Date)
	if err != nil {
		h.fail(c, err)
		return
	}

	entries, err := h.foodLog.AnalyzeText(c.Request.Context(), req.Text, date)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *Handler) Summary(c *gin.Context) {
	date, err := h.foodLog.ResolveDate(c.Query("date"))
	if err != nil {
		h.fail(c, err)
		return
	}

	var hour *int
	if raw := c.Query("hour"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			h.badRequest(c, "hour must be between 0 and 23")
			return
		}
		hour = &v
	}

	summary, err := h.foodLog.Summary(c.Request.Context(), date, hour)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Week returns the totals of the 7 days ending at end (default today)
func (h *Handler) Week(c *gin.Context) {
	end, err := h.foodLog.ResolveDate(c.Query("end"))
	if err != nil {
		h.fail(c, err)
		return
	}
	days, label, err := h.foodLog.Week(c.Request.Context(), end)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days, "dateRange": label})
}
