package validators

import (
	"strings"

	"photochat/internal/errs"
	"photochat/internal/models"
)

// ValidateMessage enforces the one invariant every message must satisfy: after
// trimming whitespace, it carries text, a photo URL, or both.
func ValidateMessage(message *models.Message) error {
	if message == nil {
		return errs.ErrInvalidRequest
	}
	hasText := strings.TrimSpace(message.Content) != ""
	hasPhoto := message.PhotoURL != nil && *message.PhotoURL != ""
	if !hasText && !hasPhoto {
		return errs.ErrEmptyMessage
	}
	if message.SenderID == "" {
		return errs.ErrInvalidUserID
	}
	if message.ConversationID == 0 {
		return errs.ErrInvalidConversationId
	}
	return nil
}
