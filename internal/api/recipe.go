package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type RecipeHandler struct {
	recipeService service.IRecipeService
}

func NewRecipeHandler(recipeService service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

func (h *RecipeHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/recipe", h.CreateRecipe)
	r.GET("/recipes", h.ListRecipes)
	r.GET("/recipe/:id", h.GetRecipe)
	r.PUT("/recipe/:id", h.UpdateRecipe)
	r.DELETE("/recipes/:id", h.DeleteRecipe)

	r.GET("/DistinctCuisines", h.DistinctCuisines)
	r.GET("/SearchRecipesByCuisine", h.SearchByCuisine)
	r.GET("/SearchRecipesByDifficultyLevel", h.SearchByDifficulty)
	r.GET("/recipes/search", h.SearchByName)
	r.GET("/recipes/filter", h.Filter)
}

// recipeList answers 404 with notFound when the result set is empty.
func recipeList(c *gin.Context, recipes []models.Recipe, notFound string) {
	if len(recipes) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": notFound})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "recipes fetched successfully",
		"recipes": recipes,
	})
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	recipe, err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "recipe created successfully",
		"recipe":  recipe,
	})
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipeService.ListRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	recipeList(c, recipes, "no recipes found")
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "recipe fetched successfully",
		"recipe":  recipe,
	})
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req types.RecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "recipe updated successfully",
		"recipe":  recipe,
	})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted successfully"})
}

func (h *RecipeHandler) DistinctCuisines(c *gin.Context) {
	cuisines, err := h.recipeService.DistinctCuisines(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if len(cuisines) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "no cuisines found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "cuisines fetched successfully",
		"cuisines": cuisines,
	})
}

func (h *RecipeHandler) SearchByCuisine(c *gin.Context) {
	cuisine := c.Query("cuisine")
	recipes, err := h.recipeService.SearchByCuisine(c.Request.Context(), cuisine)
	if err != nil {
		respondError(c, err)
		return
	}
	recipeList(c, recipes, fmt.Sprintf("no recipes found for cuisine: %s", cuisine))
}

func (h *RecipeHandler) SearchByDifficulty(c *gin.Context) {
	level := c.Query("difficultyLevel")
	recipes, err := h.recipeService.SearchByDifficulty(c.Request.Context(), level)
	if err != nil {
		respondError(c, err)
		return
	}
	recipeList(c, recipes, fmt.Sprintf("no recipes found for difficulty level: %s", level))
}

func (h *RecipeHandler) SearchByName(c *gin.Context) {
	name := c.Query("name")
	recipes, err := h.recipeService.SearchByName(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}
	recipeList(c, recipes, fmt.Sprintf("no recipes found with name: %s", name))
}

func (h *RecipeHandler) Filter(c *gin.Context) {
	var f types.RecipeFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		badRequest(c, "invalid filter")
		return
	}

	recipes, err := h.recipeService.Filter(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "recipes fetched successfully",
		"recipes": recipes,
	})
}
