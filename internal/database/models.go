package database

import (
	"time"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type FoodEntryRecord struct {
	ID        string      `gorm:"primaryKey;type:varchar(36)"`
	Food      string      `gorm:"not null"`
	AmountG   float64     `gorm:"not null;default:0"`
	Kcal      float64     `gorm:"not null;default:0"`
	ProteinG  float64     `gorm:"not null;default:0"`
	CarbsG    float64     `gorm:"not null;default:0"`
	FatG      float64     `gorm:"not null;default:0"`
	FiberG    float64     `gorm:"not null;default:0"`
	EntryDate domain.Date `gorm:"not null"`
	CreatedAt time.Time
}

func (FoodEntryRecord) TableName() string {
	return "food_entries"
}

func (r *FoodEntryRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

type AnalysisRecord struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	DateRange string `gorm:"not null"`
	Analysis  string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

func (AnalysisRecord) TableName() string {
	return "analyses"
}

func (r *AnalysisRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// RecipeSetRecord keeps suggestions and the dates they were based on as JSON
type RecipeSetRecord struct {
	ID           string                                       `gorm:"primaryKey;type:varchar(36)"`
	DateRange    string                                       `gorm:"not null"`
	Suggestions  datatypes.JSONSlice[domain.RecipeSuggestion] `gorm:"not null"`
	BasedOnDates datatypes.JSONSlice[domain.Date]             `gorm:"not null"`
	CreatedAt    time.Time
}

func (RecipeSetRecord) TableName() string {
	return "recipe_sets"
}

func (r *RecipeSetRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Models lists every table managed by AutoMigrate
func Models() []any {
	return []any{&FoodEntryRecord{}, &AnalysisRecord{}, &RecipeSetRecord{}}
}
