package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Cinemaker123/nutrition-tracker/internal/api"
	"github.com/Cinemaker123/nutrition-tracker/internal/auth"
	"github.com/Cinemaker123/nutrition-tracker/internal/config"
	"github.com/Cinemaker123/nutrition-tracker/internal/database"
	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	apperrors "github.com/Cinemaker123/nutrition-tracker/internal/errors"
	"github.com/Cinemaker123/nutrition-tracker/internal/repository"
	"github.com/Cinemaker123/nutrition-tracker/internal/services"
	"github.com/gin-gonic/gin"
)

const password = "s3cret"

type stubAI struct {
	rows        []domain.MacroResult
	extractErr  error
	analysis    string
	suggestions []domain.RecipeSuggestion
}

func (s *stubAI) ExtractMacros(ctx context.Context, text string) ([]domain.MacroResult, error) {
	return s.rows, s.extractErr
}

func (s *stubAI) AnalyzeDays(ctx context.Context, days []domain.DayData, goals domain.MacroGoals) (string, error) {
	return s.analysis, nil
}

func (s *stubAI) SuggestRecipes(ctx context.Context, days []domain.DayData, goals domain.MacroGoals) ([]domain.RecipeSuggestion, error) {
	return s.suggestions, nil
}

func newServer(t *testing.T, ai *stubAI) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(config.DBConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "api.db")})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })

	entries := repository.NewEntryRepository(db)
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	foodLog := services.NewFoodLogService(entries, ai, domain.DefaultGoals, time.UTC).
		WithClock(func() time.Time { return now })
	insights := services.NewInsightsService(entries, ai,
		repository.NewAnalysisRepository(db), repository.NewRecipeRepository(db), domain.DefaultGoals)

	return api.NewRouter(api.NewHandler(foodLog, insights), auth.NewChecker(password))
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-password", password)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return v
}

func TestHealthIsOpen(t *testing.T) {
	r := newServer(t, &stubAI{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing request id header")
	}
}

func TestPasswordGate(t *testing.T) {
	r := newServer(t, &stubAI{})
	for _, pw := range []string{"", "wrong"} {
		req := httptest.NewRequest(http.MethodGet, "/api/entries", nil)
		if pw != "" {
			req.Header.Set("x-password", pw)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("password %q: status = %d", pw, w.Code)
		}
		body := decode[map[string]string](t, w)
		if body["error"] != "Unauthorized" {
			t.Errorf("body = %v", body)
		}
	}
}

func TestAnalyzeAndListEntries(t *testing.T) {
	ai := &stubAI{rows: []domain.MacroResult{
		{Food: "Oats", AmountG: 50, Macros: domain.Macros{Kcal: 190, ProteinG: 6.5, CarbsG: 33, FatG: 3.5, FiberG: 5}},
		{Food: "Skyr", AmountG: 150, Macros: domain.Macros{Kcal: 95, ProteinG: 16.5, CarbsG: 6}},
	}}
	r := newServer(t, ai)

	w := do(t, r, http.MethodPost, "/api/analyze", map[string]string{"text": "oats and skyr", "date": "2025-03-09"})
	if w.Code != http.StatusOK {
		t.Fatalf("analyze status = %d: %s", w.Code, w.Body)
	}
	created := decode[struct {
		Entries []domain.FoodLogEntry `json:"entries"`
	}](t, w)
	if len(created.Entries) != 2 {
		t.Fatalf("entries = %+v", created.Entries)
	}

	w = do(t, r, http.MethodGet, "/api/entries?date=2025-03-09", nil)
	listed := decode[struct {
		Entries []domain.FoodLogEntry `json:"entries"`
	}](t, w)
	if len(listed.Entries) != 2 || listed.Entries[0].Food != "Oats" || listed.Entries[1].Food != "Skyr" {
		t.Errorf("listed = %+v", listed.Entries)
	}

	// default date is today, which has nothing
	w = do(t, r, http.MethodGet, "/api/entries", nil)
	today := decode[struct {
		Entries []domain.FoodLogEntry `json:"entries"`
	}](t, w)
	if today.Entries == nil || len(today.Entries) != 0 {
		t.Errorf("today = %+v", today.Entries)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	ai := &stubAI{extractErr: apperrors.NewExternalAPIError(errors.New("boom"), "kimi")}
	r := newServer(t, ai)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"empty text", map[string]string{"text": "  "}, http.StatusBadRequest},
		{"bad date", map[string]string{"text": "oats", "date": "yesterday"}, http.StatusBadRequest},
		{"extraction failure", map[string]string{"text": "oats"}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/analyze", tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d (%s)", w.Code, tt.want, w.Body)
			}
			if decode[map[string]any](t, w)["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestCreateAndDeleteEntry(t *testing.T) {
	r := newServer(t, &stubAI{})

	w := do(t, r, http.MethodPost, "/api/entries", map[string]any{
		"food": "Tofu", "amount_g": 200, "kcal": 290, "protein_g": 32, "carbs_g": 4, "fat_g": 17, "fiber_g": 2,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body)
	}
	entry := decode[struct {
		Entry domain.FoodLogEntry `json:"entry"`
	}](t, w).Entry
	if entry.EntryDate.String() != "2025-03-10" {
		t.Errorf("entry date = %s", entry.EntryDate)
	}

	w = do(t, r, http.MethodPost, "/api/entries", map[string]any{
		"food": "Tofu", "amount_g": 200, "kcal": -1, "protein_g": 32, "carbs_g": 4, "fat_g": 17, "fiber_g": 2,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("negative kcal status = %d", w.Code)
	}

	w = do(t, r, http.MethodDelete, "/api/entries/"+entry.ID, nil)
	if w.Code != http.StatusOK || decode[map[string]bool](t, w)["success"] != true {
		t.Errorf("delete = %d %s", w.Code, w.Body)
	}
	w = do(t, r, http.MethodDelete, "/api/entries/"+entry.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", w.Code)
	}
}

func TestCreateEntryRequiresEveryMacro(t *testing.T) {
	r := newServer(t, &stubAI{})

	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{"only amount", map[string]any{"food": "mystery", "amount_g": 100},
			"Missing required fields: kcal, protein_g, carbs_g, fat_g, fiber_g"},
		{"no fiber", map[string]any{"food": "Tofu", "amount_g": 200, "kcal": 290, "protein_g": 32, "carbs_g": 4, "fat_g": 17},
			"Missing required fields: fiber_g"},
		{"no amount", map[string]any{"food": "Tofu", "kcal": 290, "protein_g": 32, "carbs_g": 4, "fat_g": 17, "fiber_g": 0},
			"Missing required fields: amount_g"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/api/entries", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d: %s", w.Code, w.Body)
			}
			if got := decode[map[string]string](t, w)["error"]; got != tt.want {
				t.Errorf("error = %q, want %q", got, tt.want)
			}
		})
	}

	// explicit zeros are values, not missing fields
	w := do(t, r, http.MethodPost, "/api/entries", map[string]any{
		"food": "Water", "amount_g": 250, "kcal": 0, "protein_g": 0, "carbs_g": 0, "fat_g": 0, "fiber_g": 0,
	})
	if w.Code != http.StatusCreated {
		t.Errorf("all-zero entry status = %d: %s", w.Code, w.Body)
	}

	w = do(t, r, http.MethodGet, "/api/entries", nil)
	entries := decode[struct {
		Entries []domain.FoodLogEntry `json:"entries"`
	}](t, w).Entries
	if len(entries) != 1 || entries[0].Food != "Water" {
		t.Errorf("stored entries = %+v", entries)
	}
}

func TestSummary(t *testing.T) {
	ai := &stubAI{rows: []domain.MacroResult{{Food: "Tofu", AmountG: 200, Macros: domain.Macros{Kcal: 290, ProteinG: 32}}}}
	r := newServer(t, ai)
	do(t, r, http.MethodPost, "/api/analyze", map[string]string{"text": "tofu"})

	w := do(t, r, http.MethodGet, "/api/summary?hour=8", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	s := decode[struct {
		Date       string        `json:"date"`
		Hour       int           `json:"hour"`
		EntryCount int           `json:"entry_count"`
		Totals     domain.Macros `json:"totals"`
		Nutrients  []any         `json:"nutrients"`
	}](t, w)
	if s.Date != "2025-03-10" || s.Hour != 8 || s.EntryCount != 1 || s.Totals.ProteinG != 32 || len(s.Nutrients) != 5 {
		t.Errorf("summary = %+v", s)
	}

	for _, q := range []string{"hour=24", "hour=abc", "date=2025-13-01"} {
		if w := do(t, r, http.MethodGet, "/api/summary?"+q, nil); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", q, w.Code)
		}
	}
}

func TestAnalyzeWeekAndArchive(t *testing.T) {
	ai := &stubAI{analysis: "Weekend dinners carry most of the carbs. Plan a lentil dish for Saturday."}
	r := newServer(t, ai)

	w := do(t, r, http.MethodPost, "/api/analyze-7days", map[string]string{"endDate": "2025-03-10"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	res := decode[services.AnalysisResult](t, w)
	if res.Analysis != ai.analysis || res.DaysAnalyzed != 0 || res.DateRange != "Mar 4 - Mar 10" {
		t.Errorf("result = %+v", res)
	}

	w = do(t, r, http.MethodPost, "/api/analyses", map[string]string{"date_range": res.DateRange, "analysis": res.Analysis})
	saved := decode[struct {
		Analysis domain.Analysis `json:"analysis"`
	}](t, w).Analysis
	if w.Code != http.StatusOK || saved.ID == "" {
		t.Fatalf("save = %d %s", w.Code, w.Body)
	}

	w = do(t, r, http.MethodGet, "/api/analyses", nil)
	list := decode[struct {
		Analyses []domain.Analysis `json:"analyses"`
	}](t, w).Analyses
	if len(list) != 1 || list[0].ID != saved.ID {
		t.Errorf("list = %+v", list)
	}

	if w := do(t, r, http.MethodDelete, "/api/analyses/"+saved.ID, nil); w.Code != http.StatusOK {
		t.Errorf("delete status = %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/analyses", map[string]string{"date_range": "x"}); w.Code != http.StatusBadRequest {
		t.Errorf("missing analysis status = %d", w.Code)
	}
}

func TestRecipesAndArchive(t *testing.T) {
	ai := &stubAI{suggestions: []domain.RecipeSuggestion{
		{Name: "Chickpea salad", Description: "Chickpeas, cucumber and feta.", PrimaryMacro: domain.NutrientProtein, Type: domain.MealTypeMeal},
		{Name: "Tempeh stir fry", Description: "Tempeh with greens.", PrimaryMacro: domain.NutrientProtein, Type: domain.MealTypeMeal},
		{Name: "Pear", Description: "One ripe pear.", PrimaryMacro: domain.NutrientFiber, Type: domain.MealTypeSnack},
	}}
	r := newServer(t, ai)

	w := do(t, r, http.MethodGet, "/api/recipes?endDate=2025-03-10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	res := decode[services.RecipeResult](t, w)
	if len(res.Suggestions) != 3 || res.DateRange != "Mar 9 - Mar 10" || len(res.BasedOnDates) != 2 {
		t.Errorf("result = %+v", res)
	}

	w = do(t, r, http.MethodPost, "/api/recipes/archive", map[string]any{
		"date_range":     res.DateRange,
		"suggestions":    res.Suggestions,
		"based_on_dates": res.BasedOnDates,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d: %s", w.Code, w.Body)
	}
	saved := decode[struct {
		Recipe domain.ArchivedRecipeSet `json:"recipe"`
	}](t, w).Recipe

	w = do(t, r, http.MethodGet, "/api/recipes/archive", nil)
	sets := decode[struct {
		Recipes []domain.ArchivedRecipeSet `json:"recipes"`
	}](t, w).Recipes
	if len(sets) != 1 || len(sets[0].Suggestions) != 3 || sets[0].BasedOnDates[1].String() != "2025-03-10" {
		t.Errorf("sets = %+v", sets)
	}

	if w := do(t, r, http.MethodDelete, "/api/recipes/archive/"+saved.ID, nil); w.Code != http.StatusOK {
		t.Errorf("delete status = %d", w.Code)
	}
	if w := do(t, r, http.MethodDelete, "/api/recipes/archive/"+saved.ID, nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", w.Code)
	}
}

func TestWeek(t *testing.T) {
	r := newServer(t, &stubAI{})
	w := do(t, r, http.MethodGet, "/api/week?end=2025-03-10", nil)
	body := decode[struct {
		Days      []domain.DayTotals `json:"days"`
		DateRange string             `json:"dateRange"`
	}](t, w)
	if len(body.Days) != 7 || body.DateRange != "Mar 4 - Mar 10" {
		t.Errorf("week = %+v", body)
	}
}
