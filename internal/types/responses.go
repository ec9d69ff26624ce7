package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/pageza/recipeshare/backend/internal/models"
)

// UserResponse is the public view of a user; it never includes the password hash.
type UserResponse struct {
	ID                uuid.UUID `json:"id"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	ProfilePictureURL string    `json:"profile_picture_url"`
	AboutMe           string    `json:"about_me"`
	CreatedAt         time.Time `json:"created_at"`
}

// NewUserResponse strips private fields from a user row.
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:                u.ID,
		Username:          u.Username,
		Email:             u.Email,
		ProfilePictureURL: u.ProfilePictureURL,
		AboutMe:           u.AboutMe,
		CreatedAt:         u.CreatedAt,
	}
}

// PictureUploadResponse tells the client where to PUT the file and the URL to store on the entity.
type PictureUploadResponse struct {
	UploadURL string    `json:"upload_url"`
	ObjectURL string    `json:"object_url"`
	ExpiresAt time.Time `json:"expires_at"`
}
