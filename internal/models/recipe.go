package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe carries two denormalized counters. Likes always equals the number of
// Like rows pointing at the recipe and Reviews the number of Review rows; only
// the engagement service writes them.
type Recipe struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	Cuisine          string    `gorm:"size:100;not null;index" json:"cuisine"`
	Ingredients      string    `gorm:"type:text;not null" json:"ingredients"`
	Instructions     string    `gorm:"type:text;not null" json:"instructions"`
	RecipePictureURL string    `gorm:"size:512;not null" json:"recipe_picture_url"`
	TotalPrepTime    int       `gorm:"not null" json:"total_prep_time"`
	DifficultyLevel  string    `gorm:"size:50;not null;index" json:"difficulty_level"`
	Notes            string    `gorm:"type:text;not null" json:"notes"`
	Likes            int       `gorm:"not null;default:0" json:"likes"`
	Reviews          int       `gorm:"not null;default:0" json:"reviews"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IsOwnedBy reports whether userID authored the recipe.
func (r *Recipe) IsOwnedBy(userID uuid.UUID) bool {
	return r.UserID == userID
}
