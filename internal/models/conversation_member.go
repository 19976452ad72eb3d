package models

import (
	"time"

	"gorm.io/gorm"
)

// ConversationMember binds a user to a conversation.
type ConversationMember struct {
	gorm.Model
	ConversationID uint      `gorm:"index" json:"conversation_id"`
	UserID         string    `gorm:"index;not null" json:"user_id"`
	JoinedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"joined_at"`
}
