package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/types"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 24 * time.Hour

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

type AuthService struct {
	db        *gorm.DB
	jwtSecret []byte
	revoked   TokenStore
	now       func() time.Time
}

// NewAuthService builds the identity store and session verifier. A nil
// TokenStore falls back to an in-memory one.
func NewAuthService(db *gorm.DB, jwtSecret string, revoked TokenStore) *AuthService {
	if revoked == nil {
		revoked = NewMemoryTokenStore()
	}
	return &AuthService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		revoked:   revoked,
		now:       time.Now,
	}
}

// Signup validates and stores a new user and issues a session token for it.
func (s *AuthService) Signup(ctx context.Context, req types.SignupRequest) (*models.User, string, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, "", ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return nil, "", ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	db := s.db.WithContext(ctx)
	if err := s.checkAvailable(db, email, username); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:          username,
		Email:             email,
		PasswordHash:      string(hash),
		ProfilePictureURL: models.DefaultProfilePictureURL,
		AboutMe:           models.DefaultAboutMe,
	}
	if err := db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			// Lost a race with a concurrent signup; report which value collided.
			if cerr := s.checkAvailable(db, email, username); cerr != nil {
				return nil, "", cerr
			}
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, _, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	log.WithField("user_id", user.ID).Info("user signed up")
	return user, token, nil
}

func (s *AuthService) checkAvailable(db *gorm.DB, email, username string) error {
	var n int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if n > 0 {
		return ErrEmailTaken
	}
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if n > 0 {
		return ErrUsernameTaken
	}
	return nil
}

// Login checks the credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, req types.LoginRequest) (*models.User, string, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, "", ErrMissingFields
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, "", ErrWrongPassword
	}

	token, _, err := s.GenerateToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// GenerateToken signs an HS256 token for userID and returns it with its expiry.
func (s *AuthService) GenerateToken(userID uuid.UUID) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(TokenTTL)
	claims := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// ValidateToken verifies signature, expiry and revocation. An empty token
// yields ErrMissingToken; every other failure wraps ErrInvalidToken.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &types.TokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidToken)
	}

	if claims.ID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: token revoked", ErrInvalidToken)
		}
	}
	return claims, nil
}

// Logout revokes a still-valid token. Missing or already invalid tokens are
// not an error.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		if errors.Is(err, ErrMissingToken) || errors.Is(err, ErrInvalidToken) {
			return nil
		}
		return err
	}
	if claims.ID == "" || claims.ExpiresAt == nil {
		return nil
	}
	if err := s.revoked.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	log.WithField("user_id", claims.UserID).Info("user logged out")
	return nil
}

// GetUserByID loads a user row; ErrNoSuchUser when it does not exist.
func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSuchUser
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}
