package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	apperrors "github.com/Cinemaker123/nutrition-tracker/internal/errors"
	"github.com/Cinemaker123/nutrition-tracker/internal/logger"
	"github.com/Cinemaker123/nutrition-tracker/internal/nutrition"
)

// WeekLength is the window used for multi-day views and analyses
const WeekLength = 7

type FoodLogService struct {
	entries   domain.EntryStore
	extractor domain.MacroExtractor
	photos    domain.PhotoExtractor
	goals     domain.MacroGoals
	loc       *time.Location
	now       func() time.Time
}

func NewFoodLogService(entries domain.EntryStore, extractor domain.MacroExtractor, goals domain.MacroGoals, loc *time.Location) *FoodLogService {
	if loc == nil {
		loc = time.Local
	}
	return &FoodLogService{
		entries:   entries,
		extractor: extractor,
		goals:     goals,
		loc:       loc,
		now:       time.Now,
	}
}

// WithClock replaces the time source, for tests
func (s *FoodLogService) WithClock(now func() time.Time) *FoodLogService {
	s.now = now
	return s
}

// WithPhotoExtractor enables AnalyzePhoto
func (s *FoodLogService) WithPhotoExtractor(p domain.PhotoExtractor) *FoodLogService {
	s.photos = p
	return s
}

// PhotosEnabled reports whether AnalyzePhoto can run
func (s *FoodLogService) PhotosEnabled() bool {
	return s.photos != nil
}

func (s *FoodLogService) Goals() domain.MacroGoals {
	return s.goals
}

// Today returns the current date in the configured zone
func (s *FoodLogService) Today() domain.Date {
	return nutrition.DateAt(s.now(), s.loc)
}

// ResolveDate parses a YYYY-MM-DD value, defaulting to today when empty
func (s *FoodLogService) ResolveDate(raw string) (domain.Date, error) {
	if strings.TrimSpace(raw) == "" {
		return s.Today(), nil
	}
	d, err := domain.ParseDate(strings.TrimSpace(raw))
	if err != nil {
		return domain.Date{}, apperrors.NewValidationError("date must be YYYY-MM-DD")
	}
	return d, nil
}

func (s *FoodLogService) ListEntries(ctx context.Context, date domain.Date) ([]domain.FoodLogEntry, error) {
	return s.entries.ListByDate(ctx, date)
}

// AddEntry stores one manually entered entry
func (s *FoodLogService) AddEntry(ctx context.Context, entry domain.FoodLogEntry) (domain.FoodLogEntry, error) {
	entry.ID = ""
	entry.Food = strings.TrimSpace(entry.Food)
	if err := entry.Validate(); err != nil {
		return domain.FoodLogEntry{}, apperrors.NewValidationError(err.Error())
	}
	created, err := s.entries.Create(ctx, entry)
	if err != nil {
		return domain.FoodLogEntry{}, err
	}
	return created[0], nil
}

// AnalyzeText extracts macro rows from a free-text description and stores
// them all for date
func (s *FoodLogService) AnalyzeText(ctx context.Context, text string, date domain.Date) ([]domain.FoodLogEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("Food description is required")
	}
	if date.IsZero() {
		date = s.Today()
	}

	rows, err := s.extractor.ExtractMacros(ctx, text)
	if err != nil {
		return nil, err
	}
	return s.storeRows(ctx, rows, date, "text")
}

// AnalyzePhoto extracts macro rows from a meal photo and stores them all for
// date. caption is optional.
func (s *FoodLogService) AnalyzePhoto(ctx context.Context, image []byte, mime, caption string, date domain.Date) ([]domain.FoodLogEntry, error) {
	if s.photos == nil {
		return nil, apperrors.NewExternalAPIError(errors.New("photo analysis is not configured"), "extraction")
	}
	if len(image) == 0 {
		return nil, apperrors.NewValidationError("Photo is required")
	}
	if mime == "" {
		mime = "image/jpeg"
	}
	if date.IsZero() {
		date = s.Today()
	}

	rows, err := s.photos.ExtractMacrosFromImage(ctx, image, mime, caption)
	if err != nil {
		return nil, err
	}
	return s.storeRows(ctx, rows, date, "photo")
}

// storeRows validates extracted rows and inserts them in one batch
func (s *FoodLogService) storeRows(ctx context.Context, rows []domain.MacroResult, date domain.Date, source string) ([]domain.FoodLogEntry, error) {
	entries := make([]domain.FoodLogEntry, len(rows))
	for i, r := range rows {
		entries[i] = r.Entry(date)
		if err := entries[i].Validate(); err != nil {
			return nil, apperrors.NewExternalAPIError(fmt.Errorf("row %d: %w", i, err), "extraction")
		}
	}

	created, err := s.entries.Create(ctx, entries...)
	if err != nil {
		return nil, err
	}
	logger.WithContext(ctx).Info("Logged food", "date", date.String(), "rows", len(created), "source", source)
	return created, nil
}

func (s *FoodLogService) DeleteEntry(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewValidationError("id is required")
	}
	return s.entries.Delete(ctx, id)
}

// Summary evaluates one day against the goals. A nil hour means "now" for
// today, end of day for past dates.
func (s *FoodLogService) Summary(ctx context.Context, date domain.Date, hour *int) (nutrition.DaySummary, error) {
	entries, err := s.entries.ListByDate(ctx, date)
	if err != nil {
		return nutrition.DaySummary{}, err
	}

	h := nutrition.EvaluationHour(date, s.now(), s.loc)
	if hour != nil {
		if *hour < 0 || *hour > 23 {
			return nutrition.DaySummary{}, apperrors.NewValidationError("hour must be between 0 and 23")
		}
		h = *hour
	}

	summary, err := nutrition.Summarize(date, entries, s.goals, h)
	if err != nil {
		return nutrition.DaySummary{}, apperrors.NewInternalError(err)
	}
	return summary, nil
}

// Week returns one DayTotals per day of the window ending at end, plus its label
func (s *FoodLogService) Week(ctx context.Context, end domain.Date) ([]domain.DayTotals, string, error) {
	dates := nutrition.DatesInRange(end, WeekLength)
	entries, err := s.entries.ListByDates(ctx, dates)
	if err != nil {
		return nil, "", err
	}
	totals, err := nutrition.GroupByDate(entries, dates)
	if err != nil {
		return nil, "", apperrors.NewInternalError(err)
	}
	return totals, nutrition.RangeLabel(end, WeekLength), nil
}
