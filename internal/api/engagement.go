package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type EngagementHandler struct {
	engagement service.IEngagementService
	recipes    service.IRecipeService
}

func NewEngagementHandler(engagement service.IEngagementService, recipes service.IRecipeService) *EngagementHandler {
	return &EngagementHandler{
		engagement: engagement,
		recipes:    recipes,
	}
}

func (h *EngagementHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/like/:id", h.Like)
	r.DELETE("/unlike/:id", h.Unlike)
	r.GET("/isLiked/:id", h.IsLiked)
	r.GET("/liked-recipes", h.LikedRecipes)

	// :id is the recipe for POST and GET, the review for PUT and DELETE.
	r.POST("/review/:id", h.AddReview)
	r.GET("/reviews/:id", h.ListReviews)
	r.PUT("/review/:id", h.EditReview)
	r.DELETE("/review/:id", h.DeleteReview)
}

// respondWithRecipe reports a successful toggle with the recipe's fresh counters.
func (h *EngagementHandler) respondWithRecipe(c *gin.Context, message string, recipeID uuid.UUID) {
	recipe, err := h.recipes.GetRecipe(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "recipe": recipe})
}

func (h *EngagementHandler) Like(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.engagement.Like(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	h.respondWithRecipe(c, "recipe liked successfully", recipeID)
}

func (h *EngagementHandler) Unlike(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.engagement.Unlike(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	h.respondWithRecipe(c, "recipe unliked successfully", recipeID)
}

func (h *EngagementHandler) IsLiked(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	liked, err := h.engagement.IsLiked(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "like status fetched successfully", "liked": liked})
}

func (h *EngagementHandler) LikedRecipes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	recipes, err := h.engagement.LikedRecipes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	recipeList(c, recipes, "no liked recipes found")
}

func (h *EngagementHandler) AddReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	var req types.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	review, err := h.engagement.AddReview(c.Request.Context(), userID, recipeID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review added successfully", "review": review})
}

func (h *EngagementHandler) ListReviews(c *gin.Context) {
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	reviews, err := h.engagement.ListReviews(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reviews fetched successfully", "reviews": reviews})
}

func (h *EngagementHandler) EditReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c)
	if !ok {
		return
	}

	var req types.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	review, err := h.engagement.EditReview(c.Request.Context(), reviewID, userID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review updated successfully", "review": review})
}

func (h *EngagementHandler) DeleteReview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c)
	if !ok {
		return
	}

	err := h.engagement.DeleteReview(c.Request.Context(), reviewID, userID)
	if errors.Is(err, service.ErrReviewNotFound) {
		// A missing review answers 400 on delete.
		badRequest(c, err.Error())
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted successfully"})
}
