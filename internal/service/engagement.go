package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
)

// Counter expressions. Decrements are floored at zero so a counter that has
// drifted low never goes negative.
var (
	incrementLikes   = gorm.Expr("likes + 1")
	decrementLikes   = gorm.Expr("CASE WHEN likes > 0 THEN likes - 1 ELSE 0 END")
	incrementReviews = gorm.Expr("reviews + 1")
	decrementReviews = gorm.Expr("CASE WHEN reviews > 0 THEN reviews - 1 ELSE 0 END")
)

// EngagementService owns likes and reviews together with the denormalized
// counters on Recipe. Every mutation writes the row and the counter in one
// transaction, so either both are visible or neither is.
type EngagementService struct {
	db *gorm.DB
}

func NewEngagementService(db *gorm.DB) *EngagementService {
	return &EngagementService{db: db}
}

// Like records that userID likes recipeID and bumps the recipe's like count.
func (s *EngagementService) Like(ctx context.Context, userID, recipeID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := recipeExists(tx, recipeID); err != nil {
			return err
		}

		liked, err := likeExists(tx, userID, recipeID)
		if err != nil {
			return err
		}
		if liked {
			return ErrAlreadyLiked
		}

		if err := tx.Create(&models.Like{UserID: userID, RecipeID: recipeID}).Error; err != nil {
			// A concurrent like for the same pair hits idx_likes_user_recipe.
			if isUniqueViolation(err) {
				return ErrAlreadyLiked
			}
			return fmt.Errorf("insert like: %w", err)
		}

		return bumpCounter(tx, recipeID, "likes", incrementLikes)
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"user_id": userID, "recipe_id": recipeID}).Debug("recipe liked")
	return nil
}

// Unlike removes the like and decrements the recipe's like count.
func (s *EngagementService) Unlike(ctx context.Context, userID, recipeID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&models.Like{})
		if res.Error != nil {
			return fmt.Errorf("delete like: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotLiked
		}

		return bumpCounter(tx, recipeID, "likes", decrementLikes)
	})
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{"user_id": userID, "recipe_id": recipeID}).Debug("recipe unliked")
	return nil
}

// IsLiked reports whether userID currently likes recipeID. It never writes.
func (s *EngagementService) IsLiked(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	return likeExists(s.db.WithContext(ctx), userID, recipeID)
}

// LikedRecipes returns the recipes userID likes, most recently liked first.
func (s *EngagementService) LikedRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Joins("JOIN likes ON likes.recipe_id = recipes.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("list liked recipes: %w", err)
	}
	return recipes, nil
}

// AddReview stores a review and increments the recipe's review count.
func (s *EngagementService) AddReview(ctx context.Context, userID, recipeID uuid.UUID, content string) (*models.Review, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	review := &models.Review{UserID: userID, RecipeID: recipeID, Content: content}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := recipeExists(tx, recipeID); err != nil {
			return err
		}
		if err := tx.Create(review).Error; err != nil {
			return fmt.Errorf("insert review: %w", err)
		}
		return bumpCounter(tx, recipeID, "reviews", incrementReviews)
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// EditReview replaces the content of a review owned by userID. The review
// count is not touched.
func (s *EngagementService) EditReview(ctx context.Context, reviewID, userID uuid.UUID, content string) (*models.Review, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}

	var review models.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findOwnedReview(tx, reviewID, userID, &review); err != nil {
			return err
		}
		review.Content = content
		if err := tx.Model(&review).Update("content", content).Error; err != nil {
			return fmt.Errorf("update review: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// DeleteReview removes a review owned by userID and decrements the count.
func (s *EngagementService) DeleteReview(ctx context.Context, reviewID, userID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var review models.Review
		if err := findOwnedReview(tx, reviewID, userID, &review); err != nil {
			return err
		}

		res := tx.Delete(&models.Review{}, "id = ?", review.ID)
		if res.Error != nil {
			return fmt.Errorf("delete review: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Removed by a concurrent delete after we read it.
			return ErrReviewNotFound
		}
		return bumpCounter(tx, review.RecipeID, "reviews", decrementReviews)
	})
}

// ListReviews returns the reviews of a recipe, oldest first.
func (s *EngagementService) ListReviews(ctx context.Context, recipeID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func recipeExists(tx *gorm.DB, recipeID uuid.UUID) error {
	var n int64
	if err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Count(&n).Error; err != nil {
		return fmt.Errorf("find recipe: %w", err)
	}
	if n == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

func likeExists(db *gorm.DB, userID, recipeID uuid.UUID) (bool, error) {
	var n int64
	err := db.Model(&models.Like{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("find like: %w", err)
	}
	return n > 0, nil
}

func findOwnedReview(tx *gorm.DB, reviewID, userID uuid.UUID, review *models.Review) error {
	if err := tx.First(review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("find review: %w", err)
	}
	if review.UserID != userID {
		return ErrForbidden
	}
	return nil
}

func bumpCounter(tx *gorm.DB, recipeID uuid.UUID, column string, expr interface{}) error {
	res := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).UpdateColumn(column, expr)
	if res.Error != nil {
		return fmt.Errorf("update %s count: %w", column, res.Error)
	}
	return nil
}
