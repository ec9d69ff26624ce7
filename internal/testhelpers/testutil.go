package testhelpers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
)

// TestPassword is the plain-text password of every user made by CreateTestUser.
const TestPassword = "testpassword123"

// CreateTestUser inserts a user with a unique username and email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	suffix := uuid.NewString()[:8]
	user := &models.User{
		Username:          "user_" + suffix,
		Email:             fmt.Sprintf("user+%s@example.com", suffix),
		PasswordHash:      string(hash),
		ProfilePictureURL: models.DefaultProfilePictureURL,
		AboutMe:           models.DefaultAboutMe,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateTestRecipe inserts a recipe owned by userID with zeroed counters.
func CreateTestRecipe(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		UserID:           userID,
		Name:             "Test Recipe",
		Cuisine:          "Italian",
		Ingredients:      "flour, water, salt",
		Instructions:     "mix and bake",
		RecipePictureURL: "https://example.com/recipe.png",
		TotalPrepTime:    30,
		DifficultyLevel:  "easy",
		Notes:            "none",
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}

// ReloadRecipe reads the recipe row back from the database.
func ReloadRecipe(t *testing.T, db *gorm.DB, id uuid.UUID) *models.Recipe {
	t.Helper()
	var recipe models.Recipe
	require.NoError(t, db.First(&recipe, "id = ?", id).Error)
	return &recipe
}

// CountLikes returns the number of like rows for a recipe.
func CountLikes(t *testing.T, db *gorm.DB, recipeID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Like{}).Where("recipe_id = ?", recipeID).Count(&n).Error)
	return n
}

// CountReviews returns the number of review rows for a recipe.
func CountReviews(t *testing.T, db *gorm.DB, recipeID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Review{}).Where("recipe_id = ?", recipeID).Count(&n).Error)
	return n
}
