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
	"github.com/pageza/recipeshare/backend/internal/types"
)

// filterColumns is the allow-list of columns a client may filter or sort on.
var filterColumns = map[string]struct{}{
	"name":             {},
	"cuisine":          {},
	"difficulty_level": {},
	"total_prep_time":  {},
	"likes":            {},
	"reviews":          {},
}

var difficultyLevels = map[string]struct{}{
	"easy":   {},
	"medium": {},
	"hard":   {},
}

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

func validateRecipe(req *types.RecipeRequest) error {
	fields := []string{
		req.Name, req.Cuisine, req.Ingredients, req.Instructions,
		req.RecipePictureURL, req.DifficultyLevel, req.Notes,
	}
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return ErrInvalidRecipe
		}
	}
	if req.TotalPrepTime <= 0 {
		return ErrInvalidRecipe
	}
	return nil
}

// CreateRecipe stores a new recipe owned by userID with both counters at zero.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error) {
	if err := validateRecipe(req); err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		UserID:           userID,
		Name:             strings.TrimSpace(req.Name),
		Cuisine:          strings.TrimSpace(req.Cuisine),
		Ingredients:      req.Ingredients,
		Instructions:     req.Instructions,
		RecipePictureURL: strings.TrimSpace(req.RecipePictureURL),
		TotalPrepTime:    req.TotalPrepTime,
		DifficultyLevel:  strings.TrimSpace(req.DifficultyLevel),
		Notes:            req.Notes,
	}
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	log.WithFields(log.Fields{"user_id": userID, "recipe_id": recipe.ID}).Info("recipe created")
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	return findRecipe(s.db.WithContext(ctx), id)
}

// ListRecipes returns every recipe, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// UpdateRecipe replaces the editable fields of a recipe owned by userID.
// The like and review counters are never written here.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, userID uuid.UUID, req *types.RecipeRequest) (*models.Recipe, error) {
	if err := validateRecipe(req); err != nil {
		return nil, err
	}

	var recipe *models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := findRecipe(tx, id)
		if err != nil {
			return err
		}
		if !found.IsOwnedBy(userID) {
			return ErrForbidden
		}

		updates := map[string]interface{}{
			"name":               strings.TrimSpace(req.Name),
			"cuisine":            strings.TrimSpace(req.Cuisine),
			"ingredients":        req.Ingredients,
			"instructions":       req.Instructions,
			"recipe_picture_url": strings.TrimSpace(req.RecipePictureURL),
			"total_prep_time":    req.TotalPrepTime,
			"difficulty_level":   strings.TrimSpace(req.DifficultyLevel),
			"notes":              req.Notes,
		}
		if err := tx.Model(found).Updates(updates).Error; err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}

		recipe, err = findRecipe(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// DeleteRecipe removes a recipe owned by userID along with its likes and reviews.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := findRecipe(tx, id)
		if err != nil {
			return err
		}
		if !recipe.IsOwnedBy(userID) {
			return ErrForbidden
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return fmt.Errorf("delete likes: %w", err)
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("delete reviews: %w", err)
		}
		if err := tx.Delete(&models.Recipe{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"user_id": userID, "recipe_id": id}).Info("recipe deleted")
	return nil
}

// DistinctCuisines lists every cuisine that has at least one recipe.
func (s *RecipeService) DistinctCuisines(ctx context.Context) ([]string, error) {
	var cuisines []string
	err := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Distinct("cuisine").
		Order("cuisine").
		Pluck("cuisine", &cuisines).Error
	if err != nil {
		return nil, fmt.Errorf("list cuisines: %w", err)
	}
	return cuisines, nil
}

// SearchByCuisine returns recipes whose cuisine matches exactly.
func (s *RecipeService) SearchByCuisine(ctx context.Context, cuisine string) ([]models.Recipe, error) {
	cuisine = strings.TrimSpace(cuisine)
	if cuisine == "" {
		return nil, ErrEmptyQuery
	}
	return s.find(ctx, "cuisine = ?", cuisine)
}

// SearchByDifficulty returns recipes of one difficulty level: easy, medium or hard.
func (s *RecipeService) SearchByDifficulty(ctx context.Context, level string) ([]models.Recipe, error) {
	if _, ok := difficultyLevels[level]; !ok {
		return nil, ErrInvalidDifficulty
	}
	return s.find(ctx, "difficulty_level = ?", level)
}

// SearchByName is a case-insensitive substring match on the recipe name.
func (s *RecipeService) SearchByName(ctx context.Context, name string) ([]models.Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyQuery
	}
	pattern := "%" + escapeLike(strings.ToLower(name)) + "%"
	return s.find(ctx, `LOWER(name) LIKE ? ESCAPE '\'`, pattern)
}

// Filter selects recipes by one allow-listed column and optionally sorts by
// another. Column names never come from the request unchecked.
func (s *RecipeService) Filter(ctx context.Context, f types.RecipeFilter) ([]models.Recipe, error) {
	q := s.db.WithContext(ctx).Model(&models.Recipe{})

	if f.Field != "" {
		if _, ok := filterColumns[f.Field]; !ok {
			return nil, ErrInvalidField
		}
		q = q.Where(f.Field+" = ?", f.Value)
	}

	if f.Sort != "" {
		if _, ok := filterColumns[f.Sort]; !ok {
			return nil, ErrInvalidField
		}
		dir := "ASC"
		switch strings.ToLower(f.Order) {
		case "", "asc":
		case "desc":
			dir = "DESC"
		default:
			return nil, ErrInvalidField
		}
		q = q.Order(f.Sort + " " + dir)
	} else {
		q = q.Order("created_at DESC")
	}

	var recipes []models.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("filter recipes: %w", err)
	}
	return recipes, nil
}

func (s *RecipeService) find(ctx context.Context, query string, args ...interface{}) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).Where(query, args...).Order("created_at DESC").Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	return recipes, nil
}

func findRecipe(db *gorm.DB, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := db.First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return &recipe, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
