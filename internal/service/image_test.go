package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/service"
)

type mockPresigner struct {
	mock.Mock
}

func (m *mockPresigner) PresignPut(ctx context.Context, key, contentType string, exp time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, exp)
	return args.String(0), args.Error(1)
}

func (m *mockPresigner) ObjectURL(key string) string {
	return "https://cdn.example.com/" + key
}

func TestPresignUpload(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	presigner := new(mockPresigner)
	presigner.On("PresignPut", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "pictures/"+userID.String()+"/") && strings.HasSuffix(key, ".png")
	}), "image/png", service.UploadURLExpiry).Return("https://bucket.example.com/signed", nil)

	svc := service.NewImageService(presigner)
	require.True(t, svc.Enabled())

	resp, err := svc.PresignUpload(ctx, userID, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example.com/signed", resp.UploadURL)
	assert.True(t, strings.HasPrefix(resp.ObjectURL, "https://cdn.example.com/pictures/"+userID.String()+"/"))
	assert.WithinDuration(t, time.Now().Add(service.UploadURLExpiry), resp.ExpiresAt, time.Minute)
	presigner.AssertExpectations(t)
}

func TestPresignUploadRejects(t *testing.T) {
	ctx := context.Background()

	_, err := service.NewImageService(nil).PresignUpload(ctx, uuid.New(), "image/png")
	assert.ErrorIs(t, err, service.ErrStorageUnavailable)

	presigner := new(mockPresigner)
	_, err = service.NewImageService(presigner).PresignUpload(ctx, uuid.New(), "application/pdf")
	assert.ErrorIs(t, err, service.ErrUnsupportedImage)
	presigner.AssertNotCalled(t, "PresignPut")

	failing := new(mockPresigner)
	failing.On("PresignPut", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("boom"))
	_, err = service.NewImageService(failing).PresignUpload(ctx, uuid.New(), "image/jpeg")
	assert.Error(t, err)
}
