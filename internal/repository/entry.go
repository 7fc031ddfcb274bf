package repository

import (
	"context"
	"time"

	"github.com/Cinemaker123/nutrition-tracker/internal/database"
	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	apperrors "github.com/Cinemaker123/nutrition-tracker/internal/errors"
	"gorm.io/gorm"
)

// EntryRepository handles food log entries
type EntryRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db, now: time.Now}
}

// ListByDate returns the entries of one date in creation order
func (r *EntryRepository) ListByDate(ctx context.Context, date domain.Date) ([]domain.FoodLogEntry, error) {
	return r.ListByDates(ctx, []domain.Date{date})
}

// ListByDates returns the entries of all given dates, ordered by date then
// creation time
func (r *EntryRepository) ListByDates(ctx context.Context, dates []domain.Date) ([]domain.FoodLogEntry, error) {
	if len(dates) == 0 {
		return []domain.FoodLogEntry{}, nil
	}
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = d.String()
	}

	var records []database.FoodEntryRecord
	err := r.db.WithContext(ctx).
		Where("entry_date IN ?", keys).
		Order("entry_date ASC").Order("created_at ASC").Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	entries := make([]domain.FoodLogEntry, len(records))
	for i, rec := range records {
		entries[i] = entryFromRecord(rec)
	}
	return entries, nil
}

// Create stores all entries in one transaction and returns them with their
// ids and timestamps. Entries of one call keep their relative order.
func (r *EntryRepository) Create(ctx context.Context, entries ...domain.FoodLogEntry) ([]domain.FoodLogEntry, error) {
	if len(entries) == 0 {
		return []domain.FoodLogEntry{}, nil
	}

	base := r.now().UTC().Truncate(time.Microsecond)
	records := make([]database.FoodEntryRecord, len(entries))
	for i, e := range entries {
		records[i] = recordFromEntry(e)
		records[i].CreatedAt = base.Add(time.Duration(i) * time.Microsecond)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	out := make([]domain.FoodLogEntry, len(records))
	for i, rec := range records {
		out[i] = entryFromRecord(rec)
	}
	return out, nil
}

// Delete removes one entry by id
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&database.FoodEntryRecord{})
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("entry")
	}
	return nil
}

func recordFromEntry(e domain.FoodLogEntry) database.FoodEntryRecord {
	return database.FoodEntryRecord{
		ID:        e.ID,
		Food:      e.Food,
		AmountG:   e.AmountG,
		Kcal:      e.Kcal,
		ProteinG:  e.ProteinG,
		CarbsG:    e.CarbsG,
		FatG:      e.FatG,
		FiberG:    e.FiberG,
		EntryDate: e.EntryDate,
	}
}

func entryFromRecord(rec database.FoodEntryRecord) domain.FoodLogEntry {
	return domain.FoodLogEntry{
		ID:      rec.ID,
		Food:    rec.Food,
		AmountG: rec.AmountG,
		Macros: domain.Macros{
			Kcal:     rec.Kcal,
			ProteinG: rec.ProteinG,
			CarbsG:   rec.CarbsG,
			FatG:     rec.FatG,
			FiberG:   rec.FiberG,
		},
		EntryDate: rec.EntryDate,
		CreatedAt: rec.CreatedAt,
	}
}
