package services_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	apperrors "github.com/Cinemaker123/nutrition-tracker/internal/errors"
	"github.com/Cinemaker123/nutrition-tracker/internal/services"
)

type memEntries struct {
	mu      sync.Mutex
	rows    []domain.FoodLogEntry
	seq     int
	failErr error
}

func (m *memEntries) ListByDate(ctx context.Context, date domain.Date) ([]domain.FoodLogEntry, error) {
	return m.ListByDates(ctx, []domain.Date{date})
}

func (m *memEntries) ListByDates(ctx context.Context, dates []domain.Date) ([]domain.FoodLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	want := make(map[domain.Date]bool, len(dates))
	for _, d := range dates {
		want[d] = true
	}
	out := []domain.FoodLogEntry{}
	for _, r := range m.rows {
		if want[r.EntryDate] {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EntryDate.Before(out[j].EntryDate) })
	return out, nil
}

func (m *memEntries) Create(ctx context.Context, entries ...domain.FoodLogEntry) ([]domain.FoodLogEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	out := make([]domain.FoodLogEntry, len(entries))
	for i, e := range entries {
		m.seq++
		e.ID = fmt.Sprintf("e%d", m.seq)
		e.CreatedAt = time.Date(2025, 1, 1, 0, 0, m.seq, 0, time.UTC)
		m.rows = append(m.rows, e)
		out[i] = e
	}
	return out, nil
}

func (m *memEntries) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError(nil, "entry")
}

type memAnalyses struct {
	rows []domain.Analysis
}

func (m *memAnalyses) List(ctx context.Context) ([]domain.Analysis, error) {
	return m.rows, nil
}

func (m *memAnalyses) Create(ctx context.Context, a domain.Analysis) (domain.Analysis, error) {
	a.ID = fmt.Sprintf("a%d", len(m.rows)+1)
	m.rows = append([]domain.Analysis{a}, m.rows...)
	return a, nil
}

func (m *memAnalyses) Delete(ctx context.Context, id string) error {
	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError(nil, "analysis")
}

type memRecipes struct {
	rows []domain.ArchivedRecipeSet
}

func (m *memRecipes) List(ctx context.Context) ([]domain.ArchivedRecipeSet, error) {
	return m.rows, nil
}

func (m *memRecipes) Create(ctx context.Context, s domain.ArchivedRecipeSet) (domain.ArchivedRecipeSet, error) {
	s.ID = fmt.Sprintf("r%d", len(m.rows)+1)
	m.rows = append([]domain.ArchivedRecipeSet{s}, m.rows...)
	return s, nil
}

func (m *memRecipes) Delete(ctx context.Context, id string) error {
	for i, r := range m.rows {
		if r.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError(nil, "recipe set")
}

type fakeExtractor struct {
	rows  []domain.MacroResult
	err   error
	calls int
}

func (f *fakeExtractor) ExtractMacros(ctx context.Context, text string) ([]domain.MacroResult, error) {
	f.calls++
	return f.rows, f.err
}

type fakeInsights struct {
	analysis    string
	suggestions []domain.RecipeSuggestion
	err         error
	gotDays     []domain.DayData
}

func (f *fakeInsights) AnalyzeDays(ctx context.Context, days []domain.DayData, goals domain.MacroGoals) (string, error) {
	f.gotDays = days
	return f.analysis, f.err
}

func (f *fakeInsights) SuggestRecipes(ctx context.Context, days []domain.DayData, goals domain.MacroGoals) ([]domain.RecipeSuggestion, error) {
	f.gotDays = days
	return f.suggestions, f.err
}

// scriptedGenerator returns canned responses in order and records prompts
type scriptedGenerator struct {
	name      string
	responses []string
	errs      []error
	prompts   []services.Prompt
}

func (g *scriptedGenerator) Name() string { return g.name }

func (g *scriptedGenerator) Generate(ctx context.Context, p services.Prompt) (string, error) {
	i := len(g.prompts)
	g.prompts = append(g.prompts, p)
	var resp string
	var err error
	if i < len(g.responses) {
		resp = g.responses[i]
	}
	if i < len(g.errs) {
		err = g.errs[i]
	}
	return resp, err
}

// blockingGenerator waits for ctx to end
type blockingGenerator struct{ name string }

func (g blockingGenerator) Name() string { return g.name }

func (g blockingGenerator) Generate(ctx context.Context, _ services.Prompt) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}
