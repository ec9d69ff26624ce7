package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/types"
)

type AuthHandler struct {
	authService  service.IAuthService
	cookieSecure bool
}

func NewAuthHandler(authService service.IAuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		cookieSecure: cookieSecure,
	}
}

// RegisterRoutes mounts the public identity routes.
func (h *AuthHandler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/signup", h.Signup)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)
}

// RegisterProtectedRoutes mounts routes that need an authenticated user.
func (h *AuthHandler) RegisterProtectedRoutes(r gin.IRoutes) {
	r.POST("/protectedRouteVerification", h.Verify)
	r.GET("/me", h.Verify)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, token, int(service.TokenTTL/time.Second), "/", "", h.cookieSecure, true)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req types.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, token, err := h.authService.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{
		"message": "user registered successfully",
		"user":    types.NewUserResponse(user),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{
		"message": "user logged in successfully",
		"user":    types.NewUserResponse(user),
	})
}

// Logout always clears the cookie. A token that is still valid is revoked too.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := middleware.TokenFromRequest(c); err == nil {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			log.WithError(err).Warn("failed to revoke token on logout")
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"message": "user logged out successfully"})
}

// Verify returns the user behind the current session.
func (h *AuthHandler) Verify(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.authService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "user authenticated",
		"user":    types.NewUserResponse(user),
	})
}
