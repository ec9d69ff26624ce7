package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Signup(ctx context.Context, req types.SignupRequest) (*models.User, string, error)
	Login(ctx context.Context, req types.LoginRequest) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error)
	GetUserRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	UpdateRecipe(ctx context.Context, id, userID uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error
	DistinctCuisines(ctx context.Context) ([]string, error)
	SearchByCuisine(ctx context.Context, cuisine string) ([]models.Recipe, error)
	SearchByDifficulty(ctx context.Context, level string) ([]models.Recipe, error)
	SearchByName(ctx context.Context, name string) ([]models.Recipe, error)
	Filter(ctx context.Context, f types.RecipeFilter) ([]models.Recipe, error)
}

// IEngagementService defines likes and the review lifecycle.
type IEngagementService interface {
	Like(ctx context.Context, userID, recipeID uuid.UUID) error
	Unlike(ctx context.Context, userID, recipeID uuid.UUID) error
	IsLiked(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	LikedRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
	AddReview(ctx context.Context, userID, recipeID uuid.UUID, content string) (*models.Review, error)
	EditReview(ctx context.Context, reviewID, userID uuid.UUID, content string) (*models.Review, error)
	DeleteReview(ctx context.Context, reviewID, userID uuid.UUID) error
	ListReviews(ctx context.Context, recipeID uuid.UUID) ([]models.Review, error)
}

// IImageService issues picture upload URLs.
type IImageService interface {
	Enabled() bool
	PresignUpload(ctx context.Context, userID uuid.UUID, contentType string) (*types.PictureUploadResponse, error)
}

var (
	_ IAuthService       = (*AuthService)(nil)
	_ IProfileService    = (*ProfileService)(nil)
	_ IRecipeService     = (*RecipeService)(nil)
	_ IEngagementService = (*EngagementService)(nil)
	_ IImageService      = (*ImageService)(nil)
)
