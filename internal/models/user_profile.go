package models

import (
	"time"
)

// UserProfile represents a known user. Account users carry a backend-issued uuid
// and an email; device users carry a client-generated "User_*" identifier and no
// credentials.
type UserProfile struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"not null" json:"username"`
	Email        *string   `gorm:"uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (user *UserProfile) ToUserResponse() *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
	}
}

func (user *UserProfile) ToProfileResponse() *ProfileResponse {
	return &ProfileResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
