package errs

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidRequestBody = Error("invalid request body")
	ErrInvalidRequest     = Error("invalid request")
	ErrInvalidParams      = Error("invalid params")
	ErrUnauthorized       = Error("unauthorized")
	ErrInvalidPageOrSize  = Error("invalid page or size")

	ErrUserAlreadyExists = Error("user already exists")
	ErrUserNotFound      = Error("user not found")
	ErrWrongPassword     = Error("wrong password")
	ErrInvalidToken      = Error("invalid token")
	ErrInvalidEmail      = Error("invalid email")
	ErrInvalidPassword   = Error("invalid password")
	ErrInvalidUsername   = Error("username is empty or too short")
	ErrInvalidUserID     = Error("invalid user id")

	ErrConversationNotFound  = Error("conversation not found")
	ErrInvalidConversationId = Error("invalid conversation id")
	ErrNotAMember            = Error("user is not a member of the conversation")
	ErrSelfConversation      = Error("cannot open a direct conversation with yourself")

	// Failure taxonomy for the message path.
	ErrStorageUnavailable = Error("local identity storage unavailable")
	ErrFetchFailed        = Error("failed to load conversation messages")
	ErrUploadFailed       = Error("failed to upload attachment")
	ErrSendFailed         = Error("failed to send message")
	ErrEmptyMessage       = Error("message needs text or a photo")

	ErrNoFileUploaded           = Error("no file uploaded")
	ErrUnableToOpenUploadedFile = Error("unable to open uploaded file")
	ErrMissingFileExtension     = Error("attachment file name has no extension")

	ErrSynchronizerClosed = Error("synchronizer is closed")
)
