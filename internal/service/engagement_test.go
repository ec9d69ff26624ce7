package service_test

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
)

func setupEngagement(t *testing.T) (*gorm.DB, *service.EngagementService, *models.User, *models.Recipe) {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	owner := testhelpers.CreateTestUser(t, db)
	recipe := testhelpers.CreateTestRecipe(t, db, owner.ID)
	return db, service.NewEngagementService(db), owner, recipe
}

func TestLikeIncrementsOnce(t *testing.T) {
	ctx := context.Background()
	db, svc, user, recipe := setupEngagement(t)

	require.NoError(t, svc.Like(ctx, user.ID, recipe.ID))
	assert.Equal(t, 1, testhelpers.ReloadRecipe(t, db, recipe.ID).Likes)

	err := svc.Like(ctx, user.ID, recipe.ID)
	assert.ErrorIs(t, err, service.ErrAlreadyLiked)
	assert.Equal(t, 1, testhelpers.ReloadRecipe(t, db, recipe.ID).Likes)
	assert.Equal(t, int64(1), testhelpers.CountLikes(t, db, recipe.ID))
}

func TestLikeMissingRecipe(t *testing.T) {
	db, svc, user, _ := setupEngagement(t)

	err := svc.Like(context.Background(), user.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)

	var n int64
	require.NoError(t, db.Model(&models.Like{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUnlikeWithoutLike(t *testing.T) {
	db, svc, user, recipe := setupEngagement(t)

	err := svc.Unlike(context.Background(), user.ID, recipe.ID)
	assert.ErrorIs(t, err, service.ErrNotLiked)
	assert.Equal(t, 0, testhelpers.ReloadRecipe(t, db, recipe.ID).Likes)
}

func TestUnlikeNeverGoesNegative(t *testing.T) {
	ctx := context.Background()
	db, svc, user, recipe := setupEngagement(t)

	require.NoError(t, svc.Like(ctx, user.ID, recipe.ID))
	// Simulate a counter that drifted below the row count.
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", recipe.ID).UpdateColumn("likes", 0).Error)

	require.NoError(t, svc.Unlike(ctx, user.ID, recipe.ID))
	assert.Equal(t, 0, testhelpers.ReloadRecipe(t, db, recipe.ID).Likes)

	assert.ErrorIs(t, svc.Unlike(ctx, user.ID, recipe.ID), service.ErrNotLiked)
	assert.Equal(t, 0, testhelpers.ReloadRecipe(t, db, recipe.ID).Likes)
}

func TestIsLiked(t *testing.T) {
	ctx := context.Background()
	_, svc, user, recipe := setupEngagement(t)

	liked, err := svc.IsLiked(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	require.NoError(t, svc.Like(ctx, user.ID, recipe.ID))
	liked, err = svc.IsLiked(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	// Unknown recipe is simply not liked.
	liked, err = svc.IsLiked(ctx, user.ID, uuid.New())
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestTwoUsersLikeSameRecipe(t *testing.T) {
	ctx := context.Background()
	db, svc, u1, recipe := setupEngagement(t)
	u2 := testhelpers.CreateTestUser(t, db)

	require.NoError(t, svc.Like(ctx, u1.ID, recipe.ID))
	require.NoError(t, svc.Like(ctx, u2.ID, recipe.ID))
	assert.Equal(t, 2, testhelpers.ReloadRecipe(t, db, recipe.ID).Likes)

	require.NoError(t, svc.Unlike(ctx, u2.ID, recipe.ID))
	assert.Equal(t, 1, testhelpers.ReloadRecipe(t, db, recipe.ID).Likes)

	liked, err := svc.IsLiked(ctx, u1.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestLikeCounterMatchesRows(t *testing.T) {
	ctx := context.Background()
	db, svc, owner, r1 := setupEngagement(t)
	r2 := testhelpers.CreateTestRecipe(t, db, owner.ID)
	recipes := []uuid.UUID{r1.ID, r2.ID}

	users := []uuid.UUID{owner.ID}
	for i := 0; i < 3; i++ {
		users = append(users, testhelpers.CreateTestUser(t, db).ID)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		u := users[rng.Intn(len(users))]
		r := recipes[rng.Intn(len(recipes))]
		var err error
		if rng.Intn(2) == 0 {
			err = svc.Like(ctx, u, r)
			if err != nil {
				require.ErrorIs(t, err, service.ErrAlreadyLiked)
			}
		} else {
			err = svc.Unlike(ctx, u, r)
			if err != nil {
				require.ErrorIs(t, err, service.ErrNotLiked)
			}
		}

		for _, id := range recipes {
			got := testhelpers.ReloadRecipe(t, db, id).Likes
			require.Equal(t, int(testhelpers.CountLikes(t, db, id)), got, "step %d", i)
		}
	}
}

func TestConcurrentLikeSamePair(t *testing.T) {
	ctx := context.Background()
	db, svc, user, recipe := setupEngagement(t)

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		other     []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := svc.Like(ctx, user.ID, recipe.ID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, service.ErrAlreadyLiked):
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, other)
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, testhelpers.ReloadRecipe(t, db, recipe.ID).Likes)
	assert.Equal(t, int64(1), testhelpers.CountLikes(t, db, recipe.ID))
}

func TestLikedRecipes(t *testing.T) {
	ctx := context.Background()
	db, svc, user, r1 := setupEngagement(t)
	r2 := testhelpers.CreateTestRecipe(t, db, user.ID)
	testhelpers.CreateTestRecipe(t, db, user.ID)

	require.NoError(t, svc.Like(ctx, user.ID, r1.ID))
	require.NoError(t, svc.Like(ctx, user.ID, r2.ID))

	recipes, err := svc.LikedRecipes(ctx, user.ID)
	require.NoError(t, err)
	ids := []uuid.UUID{}
	for _, r := range recipes {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []uuid.UUID{r1.ID, r2.ID}, ids)

	other := testhelpers.CreateTestUser(t, db)
	recipes, err = svc.LikedRecipes(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestAddReview(t *testing.T) {
	ctx := context.Background()
	db, svc, user, recipe := setupEngagement(t)

	_, err := svc.AddReview(ctx, user.ID, recipe.ID, "   ")
	assert.ErrorIs(t, err, service.ErrEmptyContent)

	_, err = svc.AddReview(ctx, user.ID, uuid.New(), "tasty")
	assert.ErrorIs(t, err, service.ErrRecipeNotFound)
	assert.Equal(t, 0, testhelpers.ReloadRecipe(t, db, recipe.ID).Reviews)

	review, err := svc.AddReview(ctx, user.ID, recipe.ID, "  tasty  ")
	require.NoError(t, err)
	assert.Equal(t, "tasty", review.Content)
	assert.NotEqual(t, uuid.Nil, review.ID)

	// A user may review the same recipe more than once.
	_, err = svc.AddReview(ctx, user.ID, recipe.ID, "still tasty")
	require.NoError(t, err)

	assert.Equal(t, 2, testhelpers.ReloadRecipe(t, db, recipe.ID).Reviews)
	assert.Equal(t, int64(2), testhelpers.CountReviews(t, db, recipe.ID))
}

func TestEditReview(t *testing.T) {
	ctx := context.Background()
	db, svc, author, recipe := setupEngagement(t)
	stranger := testhelpers.CreateTestUser(t, db)

	review, err := svc.AddReview(ctx, author.ID, recipe.ID, "first")
	require.NoError(t, err)

	_, err = svc.EditReview(ctx, review.ID, stranger.ID, "hijacked")
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = svc.EditReview(ctx, uuid.New(), author.ID, "nope")
	assert.ErrorIs(t, err, service.ErrReviewNotFound)

	_, err = svc.EditReview(ctx, review.ID, author.ID, "")
	assert.ErrorIs(t, err, service.ErrEmptyContent)

	edited, err := svc.EditReview(ctx, review.ID, author.ID, "second")
	require.NoError(t, err)
	assert.Equal(t, "second", edited.Content)

	var stored models.Review
	require.NoError(t, db.First(&stored, "id = ?", review.ID).Error)
	assert.Equal(t, "second", stored.Content)
	assert.Equal(t, 1, testhelpers.ReloadRecipe(t, db, recipe.ID).Reviews)
}

func TestDeleteReview(t *testing.T) {
	ctx := context.Background()
	db, svc, author, recipe := setupEngagement(t)
	stranger := testhelpers.CreateTestUser(t, db)

	review, err := svc.AddReview(ctx, author.ID, recipe.ID, "good")
	require.NoError(t, err)

	err = svc.DeleteReview(ctx, review.ID, stranger.ID)
	assert.ErrorIs(t, err, service.ErrForbidden)
	assert.Equal(t, 1, testhelpers.ReloadRecipe(t, db, recipe.ID).Reviews)
	assert.Equal(t, int64(1), testhelpers.CountReviews(t, db, recipe.ID))

	require.NoError(t, svc.DeleteReview(ctx, review.ID, author.ID))
	assert.Equal(t, 0, testhelpers.ReloadRecipe(t, db, recipe.ID).Reviews)
	assert.Equal(t, int64(0), testhelpers.CountReviews(t, db, recipe.ID))

	assert.ErrorIs(t, svc.DeleteReview(ctx, review.ID, author.ID), service.ErrReviewNotFound)
}

func TestDeleteReviewFloorsCounter(t *testing.T) {
	ctx := context.Background()
	db, svc, author, recipe := setupEngagement(t)

	review, err := svc.AddReview(ctx, author.ID, recipe.ID, "good")
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.Recipe{}).Where("id = ?", recipe.ID).UpdateColumn("reviews", 0).Error)

	require.NoError(t, svc.DeleteReview(ctx, review.ID, author.ID))
	assert.Equal(t, 0, testhelpers.ReloadRecipe(t, db, recipe.ID).Reviews)
}

func TestListReviews(t *testing.T) {
	ctx := context.Background()
	db, svc, author, recipe := setupEngagement(t)
	other := testhelpers.CreateTestRecipe(t, db, author.ID)

	_, err := svc.AddReview(ctx, author.ID, recipe.ID, "one")
	require.NoError(t, err)
	_, err = svc.AddReview(ctx, author.ID, recipe.ID, "two")
	require.NoError(t, err)
	_, err = svc.AddReview(ctx, author.ID, other.ID, "elsewhere")
	require.NoError(t, err)

	reviews, err := svc.ListReviews(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	contents := []string{reviews[0].Content, reviews[1].Content}
	assert.ElementsMatch(t, []string{"one", "two"}, contents)
}
