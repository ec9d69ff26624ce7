package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/internal/types"
)

// UploadURLExpiry is how long a presigned picture upload URL is usable.
const UploadURLExpiry = 15 * time.Minute

var pictureExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ObjectPresigner is satisfied by config.S3Config.
type ObjectPresigner interface {
	PresignPut(ctx context.Context, objectKey, contentType string, expiration time.Duration) (string, error)
	ObjectURL(objectKey string) string
}

// ImageService hands out presigned upload URLs for recipe and profile pictures.
// The client uploads directly to the bucket and then stores the object URL on
// the recipe or profile.
type ImageService struct {
	storage ObjectPresigner
	now     func() time.Time
}

// NewImageService creates a new ImageService instance. A nil storage leaves
// uploads disabled.
func NewImageService(storage ObjectPresigner) *ImageService {
	return &ImageService{storage: storage, now: time.Now}
}

// Enabled reports whether picture storage is configured.
func (s *ImageService) Enabled() bool {
	return s != nil && s.storage != nil
}

// PresignUpload returns a PUT URL for a new picture under pictures/<user>/.
func (s *ImageService) PresignUpload(ctx context.Context, userID uuid.UUID, contentType string) (*types.PictureUploadResponse, error) {
	if !s.Enabled() {
		return nil, ErrStorageUnavailable
	}
	ext, ok := pictureExtensions[contentType]
	if !ok {
		return nil, ErrUnsupportedImage
	}

	key := fmt.Sprintf("pictures/%s/%s.%s", userID, uuid.NewString(), ext)
	url, err := s.storage.PresignPut(ctx, key, contentType, UploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &types.PictureUploadResponse{
		UploadURL: url,
		ObjectURL: s.storage.ObjectURL(key),
		ExpiresAt: s.now().Add(UploadURLExpiry).UTC(),
	}, nil
}
