package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile returns the user row for userID.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.findUser(s.db.WithContext(ctx), userID)
}

// UpdateProfile applies the non-nil fields of req. Usernames stay unique.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error) {
	updates := map[string]interface{}{}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, ErrMissingFields
		}
		updates["username"] = username
	}
	if req.AboutMe != nil {
		updates["about_me"] = *req.AboutMe
	}
	if req.ProfilePictureURL != nil {
		pic := strings.TrimSpace(*req.ProfilePictureURL)
		if pic == "" {
			pic = models.DefaultProfilePictureURL
		}
		updates["profile_picture_url"] = pic
	}

	var user *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.findUser(tx, userID)
		if err != nil {
			return err
		}

		if username, ok := updates["username"].(string); ok && username != found.Username {
			var n int64
			if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
				return fmt.Errorf("check username: %w", err)
			}
			if n > 0 {
				return ErrUsernameTaken
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(found).Updates(updates).Error; err != nil {
				if isUniqueViolation(err) {
					return ErrUsernameTaken
				}
				return fmt.Errorf("update profile: %w", err)
			}
		}
		user, err = s.findUser(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserRecipes returns the recipes authored by userID, newest first.
func (s *ProfileService) GetUserRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("list user recipes: %w", err)
	}
	return recipes, nil
}

func (s *ProfileService) findUser(db *gorm.DB, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNoSuchUser
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
