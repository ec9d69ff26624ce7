package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultProfilePictureURL = "https://res.cloudinary.com/yilin1234/image/upload/v1685746074/Generic-Profile-Image_vlk1kx.png"
	DefaultAboutMe           = "Welcome to my culinary world! Get ready to explore delicious recipes, cooking tips, and techniques. Let's create amazing dishes together and make cooking a joyous experience for everyone. Happy cooking!"
)

type User struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	Username          string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Email             string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash      string    `gorm:"not null" json:"-"`
	ProfilePictureURL string    `gorm:"size:512;not null" json:"profile_picture_url"`
	AboutMe           string    `gorm:"type:text;not null" json:"about_me"`
}

// BeforeCreate assigns a primary key when the caller has not.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
