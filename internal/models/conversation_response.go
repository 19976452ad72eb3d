package models

import "time"

type ConversationResponse struct {
	ID           uint      `json:"id"`
	Type         string    `json:"type"`
	Name         *string   `json:"name"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
	Participants []string  `json:"participants"`
	LastMessage  *Message  `json:"last_message"`
}
