package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	return m.recipes(m.Called(ctx))
}

func (m *MockRecipeService) UpdateRecipe(ctx context.Context, id, userID uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error) {
	args := m.Called(ctx, id, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Recipe), args.Error(1)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockRecipeService) DistinctCuisines(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRecipeService) SearchByCuisine(ctx context.Context, cuisine string) ([]models.Recipe, error) {
	return m.recipes(m.Called(ctx, cuisine))
}

func (m *MockRecipeService) SearchByDifficulty(ctx context.Context, level string) ([]models.Recipe, error) {
	return m.recipes(m.Called(ctx, level))
}

func (m *MockRecipeService) SearchByName(ctx context.Context, name string) ([]models.Recipe, error) {
	return m.recipes(m.Called(ctx, name))
}

func (m *MockRecipeService) Filter(ctx context.Context, f types.RecipeFilter) ([]models.Recipe, error) {
	return m.recipes(m.Called(ctx, f))
}

func (m *MockRecipeService) recipes(args mock.Arguments) ([]models.Recipe, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Recipe), args.Error(1)
}
