package models

import (
	"gorm.io/gorm"
)

// Message is immutable once created. At least one of Content or PhotoURL must be
// present; the validators package enforces this before anything touches the DB.
type Message struct {
	gorm.Model
	ConversationID uint         `json:"conversation_id"`
	Conversation   Conversation `json:"-"`
	SenderID       string       `gorm:"index;not null" json:"sender_id"`
	Content        string       `json:"content"`
	PhotoURL       *string      `json:"photo_url"`
}
