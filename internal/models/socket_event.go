package models

import (
	"encoding/json"
)

// SocketEvent is the envelope for every frame on the chat websocket, both
// directions.
type SocketEvent struct {
	Event          string          `json:"event"`
	ConversationID uint            `json:"conversation_id"`
	Payload        json.RawMessage `json:"payload"`
}

// SendMessagePayload carries a client send. PhotoData is the base64-encoded file
// content; PhotoName keeps the original file name so the uploader can derive the
// extension and content type.
type SendMessagePayload struct {
	Content   string `json:"content"`
	PhotoName string `json:"photo_name,omitempty"`
	PhotoData string `json:"photo_data,omitempty"`
}
