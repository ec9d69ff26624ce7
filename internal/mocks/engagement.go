package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipeshare/backend/internal/models"
)

// MockEngagementService is a mock implementation of the likes and reviews service
type MockEngagementService struct {
	mock.Mock
}

func (m *MockEngagementService) Like(ctx context.Context, userID, recipeID uuid.UUID) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *MockEngagementService) Unlike(ctx context.Context, userID, recipeID uuid.UUID) error {
	return m.Called(ctx, userID, recipeID).Error(0)
}

func (m *MockEngagementService) IsLiked(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockEngagementService) LikedRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}

func (m *MockEngagementService) AddReview(ctx context.Context, userID, recipeID uuid.UUID, content string) (*models.Review, error) {
	args := m.Called(ctx, userID, recipeID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockEngagementService) EditReview(ctx context.Context, reviewID, userID uuid.UUID, content string) (*models.Review, error) {
	args := m.Called(ctx, reviewID, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockEngagementService) DeleteReview(ctx context.Context, reviewID, userID uuid.UUID) error {
	return m.Called(ctx, reviewID, userID).Error(0)
}

func (m *MockEngagementService) ListReviews(ctx context.Context, recipeID uuid.UUID) ([]models.Review, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}
