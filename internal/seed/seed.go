// Package seed fills a development database with demo users, recipes and
// engagement. Likes and reviews go through the engagement service so the
// recipe counters match the rows.
package seed

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// DemoPassword is the password of every seeded user.
const DemoPassword = "testpassword123"

var demoUsers = []types.SignupRequest{
	{Username: "johndoe", Email: "john.doe@example.com", Password: DemoPassword},
	{Username: "janesmith", Email: "jane.smith@example.com", Password: DemoPassword},
	{Username: "bobwilson", Email: "bob.wilson@example.com", Password: DemoPassword},
}

var demoRecipes = []types.RecipeRequest{
	{
		Name:             "Spaghetti Carbonara",
		Cuisine:          "Italian",
		Ingredients:      "spaghetti, eggs, pecorino, guanciale, black pepper",
		Instructions:     "Cook pasta. Crisp guanciale. Toss with eggs and cheese off the heat.",
		RecipePictureURL: "https://images.example.com/carbonara.jpg",
		TotalPrepTime:    25,
		DifficultyLevel:  "medium",
		Notes:            "Do not scramble the eggs.",
	},
	{
		Name:             "Chicken Tacos",
		Cuisine:          "Mexican",
		Ingredients:      "tortillas, chicken thighs, lime, onion, cilantro",
		Instructions:     "Grill chicken, slice, serve in warm tortillas with toppings.",
		RecipePictureURL: "https://images.example.com/tacos.jpg",
		TotalPrepTime:    30,
		DifficultyLevel:  "easy",
		Notes:            "Marinate overnight for more flavor.",
	},
	{
		Name:             "Beef Wellington",
		Cuisine:          "British",
		Ingredients:      "beef fillet, mushrooms, prosciutto, puff pastry, egg",
		Instructions:     "Sear beef, wrap in duxelles and prosciutto, bake in pastry.",
		RecipePictureURL: "https://images.example.com/wellington.jpg",
		TotalPrepTime:    150,
		DifficultyLevel:  "hard",
		Notes:            "Rest before slicing.",
	},
	{
		Name:             "Green Curry",
		Cuisine:          "Thai",
		Ingredients:      "green curry paste, coconut milk, chicken, thai basil, eggplant",
		Instructions:     "Fry paste, add coconut milk and chicken, simmer with vegetables.",
		RecipePictureURL: "https://images.example.com/curry.jpg",
		TotalPrepTime:    40,
		DifficultyLevel:  "medium",
		Notes:            "Adjust heat with fresh chilies.",
	},
}

// Result counts what Run created.
type Result struct {
	Users   int
	Recipes int
	Likes   int
	Reviews int
}

// Run seeds the database. Users that already exist are reused and their
// recipes are not created twice, so running it again is harmless.
func Run(ctx context.Context, db *gorm.DB) (*Result, error) {
	auth := service.NewAuthService(db, "seed", nil)
	recipes := service.NewRecipeService(db)
	engagement := service.NewEngagementService(db)
	res := &Result{}

	var users []*models.User
	for _, req := range demoUsers {
		user, _, err := auth.Signup(ctx, req)
		switch {
		case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrUsernameTaken):
			log.WithField("email", req.Email).Info("user already exists, skipping")
			user = &models.User{}
			if err := db.WithContext(ctx).Where("email = ?", req.Email).First(user).Error; err != nil {
				return nil, fmt.Errorf("load existing user %s: %w", req.Email, err)
			}
		case err != nil:
			return nil, fmt.Errorf("create user %s: %w", req.Email, err)
		default:
			res.Users++
		}
		users = append(users, user)
	}

	var created []*models.Recipe
	for i, req := range demoRecipes {
		author := users[i%len(users)]

		var n int64
		if err := db.WithContext(ctx).Model(&models.Recipe{}).
			Where("user_id = ? AND name = ?", author.ID, req.Name).Count(&n).Error; err != nil {
			return nil, err
		}
		if n > 0 {
			continue
		}

		req := req
		recipe, err := recipes.CreateRecipe(ctx, author.ID, &req)
		if err != nil {
			return nil, fmt.Errorf("create recipe %s: %w", req.Name, err)
		}
		res.Recipes++
		created = append(created, recipe)
	}

	// Every user likes and reviews the recipes they did not write.
	for _, recipe := range created {
		for _, user := range users {
			if recipe.IsOwnedBy(user.ID) {
				continue
			}
			if err := engagement.Like(ctx, user.ID, recipe.ID); err != nil && !errors.Is(err, service.ErrAlreadyLiked) {
				return nil, fmt.Errorf("like recipe: %w", err)
			} else if err == nil {
				res.Likes++
			}
			content := fmt.Sprintf("Made the %s last night, %s approves.", recipe.Name, user.Username)
			if _, err := engagement.AddReview(ctx, user.ID, recipe.ID, content); err != nil {
				return nil, fmt.Errorf("review recipe: %w", err)
			}
			res.Reviews++
		}
	}

	log.WithFields(log.Fields{
		"users":   res.Users,
		"recipes": res.Recipes,
		"likes":   res.Likes,
		"reviews": res.Reviews,
	}).Info("seeding complete")
	return res, nil
}
