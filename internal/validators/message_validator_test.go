package validators

import (
	"errors"
	"testing"

	"photochat/internal/errs"
	"photochat/internal/models"
)

func TestValidateMessage(t *testing.T) {
	photoURL := "https://cdn.example/chat-photos/p.jpg"

	cases := []struct {
		name    string
		message *models.Message
		wantErr error
	}{
		{
			name:    "nil message",
			message: nil,
			wantErr: errs.ErrInvalidRequest,
		},
		{
			name:    "text only",
			message: &models.Message{ConversationID: 1, SenderID: "User_aaaaaaaa", Content: "hi"},
		},
		{
			name:    "photo only",
			message: &models.Message{ConversationID: 1, SenderID: "User_aaaaaaaa", PhotoURL: &photoURL},
		},
		{
			name:    "whitespace only content",
			message: &models.Message{ConversationID: 1, SenderID: "User_aaaaaaaa", Content: "   \n\t"},
			wantErr: errs.ErrEmptyMessage,
		},
		{
			name:    "missing sender",
			message: &models.Message{ConversationID: 1, Content: "hi"},
			wantErr: errs.ErrInvalidUserID,
		},
		{
			name:    "missing conversation",
			message: &models.Message{SenderID: "User_aaaaaaaa", Content: "hi"},
			wantErr: errs.ErrInvalidConversationId,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateMessage(tc.message)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateMessage = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("ValidateMessage = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
