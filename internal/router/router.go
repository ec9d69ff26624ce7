package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(cfg *config.Config, svc api.Services) *gin.Engine {
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.NoRoute(middleware.NotFound())

	api.RegisterRoutes(router, svc, cfg.CookieSecure)
	return router
}
