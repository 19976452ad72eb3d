package models

// MessageRequest is the REST send body. Photo bytes travel as multipart form data
// on the same endpoint, not in this struct.
type MessageRequest struct {
	ConversationID uint   `form:"conversation_id" json:"conversation_id"`
	Content        string `form:"content" json:"content"`
}

type CreateDirectConversationRequest struct {
	OtherUserID string `json:"other_user_id"`
}
