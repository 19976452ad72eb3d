package models

import (
	"sort"
	"strings"

	"gorm.io/gorm"
)

type Conversation struct {
	gorm.Model
	Type      string  `gorm:"not null" json:"type"`
	Name      *string `json:"name"`
	CreatedBy string  `gorm:"not null" json:"created_by"`
	// DirectKey is the sorted participant pair of a direct conversation. The unique
	// index makes "at most one direct conversation per unordered pair" a schema
	// guarantee instead of a check-then-create race.
	DirectKey *string              `gorm:"uniqueIndex" json:"-"`
	Members   []ConversationMember `json:"members"`
	Messages  []Message            `json:"-"`
}

// DirectKeyFor is order-independent: DirectKeyFor(a, b) == DirectKeyFor(b, a).
func DirectKeyFor(userA, userB string) string {
	pair := []string{userA, userB}
	sort.Strings(pair)
	return strings.Join(pair, "|")
}

func (conversation *Conversation) ToConversationResponse(lastMessage *Message) ConversationResponse {
	participants := make([]string, 0, len(conversation.Members))
	for _, member := range conversation.Members {
		participants = append(participants, member.UserID)
	}
	return ConversationResponse{
		ID:           conversation.ID,
		Type:         conversation.Type,
		Name:         conversation.Name,
		CreatedBy:    conversation.CreatedBy,
		CreatedAt:    conversation.CreatedAt,
		Participants: participants,
		LastMessage:  lastMessage,
	}
}
