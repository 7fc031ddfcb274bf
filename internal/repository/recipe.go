package repository

import (
	"context"

	"github.com/Cinemaker123/nutrition-tracker/internal/database"
	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	apperrors "github.com/Cinemaker123/nutrition-tracker/internal/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RecipeRepository handles archived recipe sets
type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// List returns archived sets, newest first
func (r *RecipeRepository) List(ctx context.Context) ([]domain.ArchivedRecipeSet, error) {
	var records []database.RecipeSetRecord
	if err := r.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&records).Error; err != nil {
		return nil, apperrors.NewDatabaseError(err)
	}

	out := make([]domain.ArchivedRecipeSet, 0, len(records))
	for _, rec := range records {
		out = append(out, setFromRecord(rec))
	}
	return out, nil
}

func (r *RecipeRepository) Create(ctx context.Context, set domain.ArchivedRecipeSet) (domain.ArchivedRecipeSet, error) {
	if set.Suggestions == nil {
		set.Suggestions = []domain.RecipeSuggestion{}
	}
	if set.BasedOnDates == nil {
		set.BasedOnDates = []domain.Date{}
	}

	rec := database.RecipeSetRecord{
		ID:           set.ID,
		DateRange:    set.DateRange,
		Suggestions:  datatypes.NewJSONSlice(set.Suggestions),
		BasedOnDates: datatypes.NewJSONSlice(set.BasedOnDates),
		CreatedAt:    set.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.ArchivedRecipeSet{}, apperrors.NewDatabaseError(err)
	}
	set.ID = rec.ID
	set.CreatedAt = rec.CreatedAt
	return set, nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&database.RecipeSetRecord{})
	if result.Error != nil {
		return apperrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("recipe set")
	}
	return nil
}

func setFromRecord(rec database.RecipeSetRecord) domain.ArchivedRecipeSet {
	set := domain.ArchivedRecipeSet{
		ID:           rec.ID,
		CreatedAt:    rec.CreatedAt,
		DateRange:    rec.DateRange,
		Suggestions:  []domain.RecipeSuggestion(rec.Suggestions),
		BasedOnDates: []domain.Date(rec.BasedOnDates),
	}
	if set.Suggestions == nil {
		set.Suggestions = []domain.RecipeSuggestion{}
	}
	if set.BasedOnDates == nil {
		set.BasedOnDates = []domain.Date{}
	}
	return set
}
