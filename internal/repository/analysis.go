package repository

import (
	"context"

	"github.com/Cinemaker123/nutrition-tracker/internal/database"
	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	apperrors "github.com/Cinemaker123/nutrition-tracker/internal/errors"
	"gorm.io/gorm"
)

// AnalysisRepository handles saved analyses
type AnalysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// List returns saved analyses, newest first
func (r *AnalysisRepository) List(ctx context.Context) ([]domain.Analysis, error) {
	var records []database.AnalysisRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&records).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	out := make([]domain.Analysis, len(records))
	for i, rec := range records {
		out[i] = domain.Analysis{
			ID:        rec.ID,
			CreatedAt: rec.CreatedAt,
			DateRange: rec.DateRange,
			Analysis:  rec.Analysis,
		}
	}
	return out, nil
}

func (r *AnalysisRepository) Create(ctx context.Context, a domain.Analysis) (domain.Analysis, error) {
	rec := database.AnalysisRecord{
		ID:        a.ID,
		DateRange: a.DateRange,
		Analysis:  a.Analysis,
		CreatedAt: a.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Analysis{}, apperrors.NewDatabaseError(err)
	}
	a.ID = rec.ID
	a.CreatedAt = rec.CreatedAt
	return a, nil
}

func (r *AnalysisRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&database.AnalysisRecord{})
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("analysis")
	}
	return nil
}
