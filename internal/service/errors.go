package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Session errors.
var (
	ErrMissingToken = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid token")
)

// Identity errors.
var (
	ErrMissingFields    = errors.New("all fields are required")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrEmailTaken       = errors.New("user already exists")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrUserNotFound     = errors.New("no such user with given email")
	ErrWrongPassword    = errors.New("wrong password")
	ErrNoSuchUser       = errors.New("user not found")
)

// Content and engagement errors.
var (
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrInvalidRecipe      = errors.New("all recipe fields are required and total prep time must be positive")
	ErrInvalidDifficulty  = errors.New("difficulty level must be easy, medium or hard")
	ErrInvalidField       = errors.New("invalid filter field")
	ErrEmptyQuery         = errors.New("search term is required")
	ErrAlreadyLiked       = errors.New("recipe already liked")
	ErrNotLiked           = errors.New("recipe not liked yet")
	ErrEmptyContent       = errors.New("review content is required")
	ErrReviewNotFound     = errors.New("review not found")
	ErrForbidden          = errors.New("you do not have permission to modify this resource")
	ErrUnsupportedImage   = errors.New("content type must be image/jpeg, image/png or image/webp")
	ErrStorageUnavailable = errors.New("picture storage is not configured")
)

// isUniqueViolation reports whether err comes from a unique index. Drivers
// that gorm cannot translate are matched on their message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
