package enums

const (
	SOCKET_EVENT_SEND_MESSAGE = "send_message"
	SOCKET_EVENT_NEW_MESSAGE  = "new_message"
	SOCKET_EVENT_HISTORY      = "message_history"
	SOCKET_EVENT_RETRY        = "retry"
	SOCKET_EVENT_ERROR        = "error"
)

const (
	CONVERSATION_TYPE_DIRECT = "direct"
	CONVERSATION_TYPE_GROUP  = "group"
)

const (
	FILE_BUCKET_CHAT_PHOTOS = "chat-photos"
)
