package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "RecipeShare API is running",
	})
}

// statusFor maps domain errors to HTTP status codes. Anything not listed is
// an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrMissingToken),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrWrongPassword):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrInvalidRecipe),
		errors.Is(err, service.ErrInvalidDifficulty),
		errors.Is(err, service.ErrInvalidField),
		errors.Is(err, service.ErrEmptyQuery),
		errors.Is(err, service.ErrAlreadyLiked),
		errors.Is(err, service.ErrNotLiked),
		errors.Is(err, service.ErrEmptyContent),
		errors.Is(err, service.ErrUnsupportedImage):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrNoSuchUser):
		return http.StatusNotFound
	case errors.Is(err, service.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as a JSON message. Internal errors are logged and
// never echoed to the client.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).WithError(err).Error("request failed")
		_ = c.Error(err)
		c.JSON(status, gin.H{"message": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"message": err.Error()})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}

// pathID parses the :id route parameter. On failure it has already written a 400.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

// currentUser returns the authenticated user id. Routes behind
// AuthMiddleware always have one; a missing id is answered with 401.
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No token provided"})
		return uuid.Nil, false
	}
	return id, true
}
