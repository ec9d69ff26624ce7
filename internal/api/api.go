package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// Services bundles everything the handlers depend on.
type Services struct {
	Auth       service.IAuthService
	Profile    service.IProfileService
	Recipes    service.IRecipeService
	Engagement service.IEngagementService
	Images     service.IImageService
}

// RegisterRoutes mounts the public and cookie-protected routes on router.
func RegisterRoutes(router *gin.Engine, svc Services, cookieSecure bool) {
	router.GET("/health", HealthCheck)

	authHandler := NewAuthHandler(svc.Auth, cookieSecure)
	authHandler.RegisterRoutes(router)

	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware(svc.Auth))

	authHandler.RegisterProtectedRoutes(protected)
	NewProfileHandler(svc.Profile).RegisterRoutes(protected)
	NewRecipeHandler(svc.Recipes).RegisterRoutes(protected)
	NewEngagementHandler(svc.Engagement, svc.Recipes).RegisterRoutes(protected)
	NewUploadHandler(svc.Images).RegisterRoutes(protected)
}

// NewServices builds the gorm-backed services. tokens and storage may be nil:
// revocation then stays in memory and picture uploads are disabled.
func NewServices(db *gorm.DB, jwtSecret string, tokens service.TokenStore, storage service.ObjectPresigner) Services {
	return Services{
		Auth:       service.NewAuthService(db, jwtSecret, tokens),
		Profile:    service.NewProfileService(db),
		Recipes:    service.NewRecipeService(db),
		Engagement: service.NewEngagementService(db),
		Images:     service.NewImageService(storage),
	}
}
