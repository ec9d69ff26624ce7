package testhelpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/models"
)

func TestDatabaseSetup(t *testing.T) {
	db := SetupTestDatabase(t)
	require.NotNil(t, db)

	user := CreateTestUser(t, db)
	assert.NotZero(t, user.ID)

	recipe := CreateTestRecipe(t, db, user.ID)
	assert.NotZero(t, recipe.ID)
	assert.Equal(t, 0, recipe.Likes)

	require.NoError(t, db.Create(&models.Like{UserID: user.ID, RecipeID: recipe.ID}).Error)
	assert.Equal(t, int64(1), CountLikes(t, db, recipe.ID))
	assert.Equal(t, int64(0), CountReviews(t, db, recipe.ID))
}

func TestSetupTestDatabaseIsolation(t *testing.T) {
	t.Run("first", func(t *testing.T) {
		db := SetupTestDatabase(t)
		CreateTestUser(t, db)
	})
	t.Run("second", func(t *testing.T) {
		db := SetupTestDatabase(t)
		var n int64
		require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
		assert.Equal(t, int64(0), n)
	})
}
