package services

import (
	"context"

	"photochat/internal/enums"
	"photochat/internal/errs"
	"photochat/internal/feed"
	"photochat/internal/logger"
	"photochat/internal/models"
	"photochat/internal/repositories"
	"photochat/internal/validators"
)

// ChatService is the conversation directory plus the message write path. Every
// committed message is published to the live feed after the transaction, so
// subscribers (the sender included) observe messages in commit order.
type ChatService struct {
	chatRepo *repositories.ChatRepository
	liveFeed feed.LiveFeed
}

func NewChatService(chatRepo *repositories.ChatRepository, liveFeed feed.LiveFeed) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		liveFeed: liveFeed,
	}
}

func (cs *ChatService) GetUserConversations(userID string, page, size int) (*models.ConversationListResponse, []error) {
	return cs.chatRepo.GetUserConversations(userID, page, size)
}

func (cs *ChatService) FindDirectConversation(userA, userB string) (*models.Conversation, error) {
	return cs.chatRepo.FindDirectConversation(userA, userB)
}

func (cs *ChatService) CreateDirectConversation(creatorID, otherUserID string) (*models.Conversation, []error) {
	if creatorID == otherUserID {
		return nil, []error{errs.ErrSelfConversation}
	}
	return cs.chatRepo.CreateDirectConversation(creatorID, otherUserID)
}

func (cs *ChatService) GetConversationById(conversationID uint) (*models.Conversation, []error) {
	return cs.chatRepo.GetConversationById(conversationID)
}

func (cs *ChatService) GetConversationParticipants(conversationID uint) ([]string, error) {
	return cs.chatRepo.GetConversationParticipants(conversationID)
}

func (cs *ChatService) GetConversationLastMessage(conversationID uint) (*models.Message, error) {
	return cs.chatRepo.GetConversationLastMessage(conversationID)
}

func (cs *ChatService) GetConversationMessages(conversationID uint) ([]models.Message, error) {
	return cs.chatRepo.GetConversationMessages(conversationID)
}

func (cs *ChatService) GetMessagesByConversationId(conversationID uint, page, size int) (*models.MessageListResponse, []error) {
	return cs.chatRepo.GetMessagesByConversationId(conversationID, page, size)
}

func (cs *ChatService) CheckConversationExists(conversationID uint) bool {
	return cs.chatRepo.CheckConversationExists(conversationID)
}

func (cs *ChatService) CheckUserInConversation(userID string, conversationID uint) bool {
	return cs.chatRepo.CheckUserInConversation(userID, conversationID)
}

func (cs *ChatService) SearchUsers(query string) ([]string, error) {
	return cs.chatRepo.SearchUsers(query)
}

// SendMessage validates, persists and publishes a new message. Publish failures
// are logged, not returned: the message is committed at that point and will be
// seen by the next snapshot fetch.
func (cs *ChatService) SendMessage(ctx context.Context, message *models.Message) (*models.Message, []error) {
	if err := validators.ValidateMessage(message); err != nil {
		return nil, []error{err}
	}

	saved, saveErrs := cs.chatRepo.SaveMessage(message)
	if len(saveErrs) > 0 {
		return nil, saveErrs
	}

	event := feed.Event{
		Event:          enums.SOCKET_EVENT_NEW_MESSAGE,
		ConversationID: saved.ConversationID,
		Message:        *saved,
	}
	if err := cs.liveFeed.Publish(ctx, event); err != nil {
		logger.Errorf("Failed to publish message %d to live feed: %v", saved.ID, err)
	}

	return saved, nil
}
