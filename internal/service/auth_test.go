package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/testhelpers"
	"github.com/pageza/recipeshare/backend/internal/types"
)

const testSecret = "test-secret"

func setupAuth(t *testing.T) (*gorm.DB, *service.AuthService) {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	return db, service.NewAuthService(db, testSecret, nil)
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	db, auth := setupAuth(t)

	user, token, err := auth.Signup(ctx, types.SignupRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.DefaultProfilePictureURL, user.ProfilePictureURL)
	assert.Equal(t, models.DefaultAboutMe, user.AboutMe)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	claims, err := auth.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(service.TokenTTL), claims.ExpiresAt.Time, time.Minute)

	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestSignupValidation(t *testing.T) {
	_, auth := setupAuth(t)

	tests := []struct {
		name string
		req  types.SignupRequest
		want error
	}{
		{"missing username", types.SignupRequest{Email: "a@b.co", Password: "secret1"}, service.ErrMissingFields},
		{"missing email", types.SignupRequest{Username: "a", Password: "secret1"}, service.ErrMissingFields},
		{"missing password", types.SignupRequest{Username: "a", Email: "a@b.co"}, service.ErrMissingFields},
		{"bad email", types.SignupRequest{Username: "a", Email: "not-an-email", Password: "secret1"}, service.ErrInvalidEmail},
		{"short password", types.SignupRequest{Username: "a", Email: "a@b.co", Password: "12345"}, service.ErrPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := auth.Signup(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSignupDuplicates(t *testing.T) {
	ctx := context.Background()
	db, auth := setupAuth(t)

	_, _, err := auth.Signup(ctx, types.SignupRequest{Username: "alice", Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, _, err = auth.Signup(ctx, types.SignupRequest{Username: "other", Email: "alice@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	_, _, err = auth.Signup(ctx, types.SignupRequest{Username: "alice", Email: "new@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, service.ErrUsernameTaken)

	var n int64
	require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	db, auth := setupAuth(t)
	user := testhelpers.CreateTestUser(t, db)

	got, token, err := auth.Login(ctx, types.LoginRequest{Email: user.Email, Password: testhelpers.TestPassword})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	claims, err := auth.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, _, err = auth.Login(ctx, types.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, service.ErrUserNotFound)

	_, _, err = auth.Login(ctx, types.LoginRequest{Email: user.Email, Password: "wrong-password"})
	assert.ErrorIs(t, err, service.ErrWrongPassword)

	_, _, err = auth.Login(ctx, types.LoginRequest{Email: user.Email})
	assert.ErrorIs(t, err, service.ErrMissingFields)
}

func TestValidateToken(t *testing.T) {
	ctx := context.Background()
	_, auth := setupAuth(t)
	userID := uuid.New()

	sign := func(t *testing.T, method jwt.SigningMethod, key interface{}, claims types.TokenClaims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}
	valid := types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: userID,
	}

	t.Run("missing", func(t *testing.T) {
		_, err := auth.ValidateToken(ctx, "")
		assert.ErrorIs(t, err, service.ErrMissingToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := auth.ValidateToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodHS256, []byte("other-secret"), valid)
		_, err := auth.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodHS512, []byte(testSecret), valid)
		_, err := auth.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		expired := valid
		expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), expired)
		_, err := auth.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("no expiry", func(t *testing.T) {
		noExp := valid
		noExp.ExpiresAt = nil
		token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), noExp)
		_, err := auth.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("no user", func(t *testing.T) {
		noUser := valid
		noUser.UserID = uuid.Nil
		token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), noUser)
		_, err := auth.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, service.ErrInvalidToken)
	})

	t.Run("valid", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodHS256, []byte(testSecret), valid)
		claims, err := auth.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	db, _ := setupAuth(t)
	store := service.NewMemoryTokenStore()
	auth := service.NewAuthService(db, testSecret, store)
	user := testhelpers.CreateTestUser(t, db)

	token, _, err := auth.GenerateToken(user.ID)
	require.NoError(t, err)
	other, _, err := auth.GenerateToken(user.ID)
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, token))

	_, err = auth.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	// Other sessions of the same user are unaffected.
	_, err = auth.ValidateToken(ctx, other)
	assert.NoError(t, err)

	// Logging out without a token, or twice, is fine.
	assert.NoError(t, auth.Logout(ctx, ""))
	assert.NoError(t, auth.Logout(ctx, token))
}

func TestGetUserByID(t *testing.T) {
	ctx := context.Background()
	db, auth := setupAuth(t)
	user := testhelpers.CreateTestUser(t, db)

	got, err := auth.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	_, err = auth.GetUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNoSuchUser)
}
