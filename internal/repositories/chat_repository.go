package repositories

import (
	"errors"
	"strings"
	"time"

	"photochat/internal/enums"
	"photochat/internal/errs"
	"photochat/internal/models"
	"photochat/internal/utils"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{
		db: db,
	}
}

// FindDirectConversation returns the direct conversation between the two users,
// or nil when none exists. The lookup goes through the derived direct key, so it
// is symmetric in its arguments by construction.
func (chr *ChatRepository) FindDirectConversation(userA, userB string) (*models.Conversation, error) {
	key := models.DirectKeyFor(userA, userB)

	var conversation models.Conversation
	err := chr.db.
		Preload("Members").
		Where("type = ? AND direct_key = ?", enums.CONVERSATION_TYPE_DIRECT, key).
		First(&conversation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// CreateDirectConversation returns the existing direct conversation for the pair
// when there is one; otherwise it creates the conversation and both member rows
// in a single transaction. The unique index on direct_key catches the
// check-then-create race against a concurrent caller, in which case the winner's
// conversation is returned.
func (chr *ChatRepository) CreateDirectConversation(creatorID, otherUserID string) (*models.Conversation, []error) {
	var errorList []error

	existing, err := chr.FindDirectConversation(creatorID, otherUserID)
	if err != nil {
		errorList = append(errorList, err)
		return nil, errorList
	}
	if existing != nil {
		return existing, nil
	}

	key := models.DirectKeyFor(creatorID, otherUserID)
	conversation := models.Conversation{
		Type:      enums.CONVERSATION_TYPE_DIRECT,
		CreatedBy: creatorID,
		DirectKey: &key,
	}

	txErr := chr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&conversation).Error; err != nil {
			return err
		}
		for _, userID := range []string{creatorID, otherUserID} {
			member := models.ConversationMember{
				ConversationID: conversation.ID,
				UserID:         userID,
				JoinedAt:       time.Now(),
			}
			if err := tx.Create(&member).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, gorm.ErrDuplicatedKey) {
			// Lost the race; hand back the winner.
			winner, findErr := chr.FindDirectConversation(creatorID, otherUserID)
			if findErr == nil && winner != nil {
				return winner, nil
			}
		}
		errorList = append(errorList, txErr)
		return nil, errorList
	}

	created, findErrs := chr.GetConversationById(conversation.ID)
	if len(findErrs) > 0 {
		return nil, findErrs
	}
	return created, nil
}

func (chr *ChatRepository) GetConversationById(conversationID uint) (*models.Conversation, []error) {
	var errorList []error
	var conversation models.Conversation

	err := chr.db.
		Preload("Members").
		Where("id = ?", conversationID).
		First(&conversation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		errorList = append(errorList, errs.ErrConversationNotFound)
		return nil, errorList
	}
	if err != nil {
		errorList = append(errorList, err)
		return nil, errorList
	}
	return &conversation, nil
}

func (chr *ChatRepository) GetUserConversations(userID string, page, size int) (*models.ConversationListResponse, []error) {
	var errorList []error
	var conversations []models.Conversation
	var total int64

	membership := "id IN (SELECT conversation_id FROM conversation_members WHERE user_id = ? AND deleted_at IS NULL)"

	transactionErr := chr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Scopes(utils.Paginate(page, size)).
			Preload("Members").
			Where(membership, userID).
			Order("created_at DESC").
			Find(&conversations).Error; err != nil {
			return err
		}

		if err := tx.
			Model(&models.Conversation{}).
			Where(membership, userID).
			Count(&total).Error; err != nil {
			return err
		}

		return nil
	})
	if transactionErr != nil {
		errorList = append(errorList, transactionErr)
		return nil, errorList
	}

	conversationResponses := make([]models.ConversationResponse, 0, len(conversations))
	for _, conversation := range conversations {
		lastMessage, _ := chr.GetConversationLastMessage(conversation.ID)
		conversationResponses = append(conversationResponses, conversation.ToConversationResponse(lastMessage))
	}

	return &models.ConversationListResponse{
		Conversations: conversationResponses,
		Page:          page,
		Size:          size,
		Total:         total,
	}, nil
}

func (chr *ChatRepository) GetConversationLastMessage(conversationID uint) (*models.Message, error) {
	var message models.Message
	if err := chr.db.
		Where("conversation_id = ?", conversationID).
		Last(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// GetConversationMessages returns the full snapshot for a conversation, ascending
// by creation time. This is the initial load the synchronizer reconciles the live
// feed against.
func (chr *ChatRepository) GetConversationMessages(conversationID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := chr.db.
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (chr *ChatRepository) GetMessagesByConversationId(conversationID uint, page, size int) (*models.MessageListResponse, []error) {
	var errorList []error
	var messages []models.Message
	var total int64

	transactionErr := chr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Scopes(utils.Paginate(page, size)).
			Where("conversation_id = ?", conversationID).
			Order("created_at ASC, id ASC").
			Find(&messages).Error; err != nil {
			return err
		}

		if err := tx.
			Model(&models.Message{}).
			Where("conversation_id = ?", conversationID).
			Count(&total).Error; err != nil {
			return err
		}

		return nil
	})
	if transactionErr != nil {
		errorList = append(errorList, transactionErr)
		return nil, errorList
	}

	return &models.MessageListResponse{
		Messages: messages,
		Page:     page,
		Size:     size,
		Total:    total,
	}, nil
}

func (chr *ChatRepository) SaveMessage(message *models.Message) (*models.Message, []error) {
	var errorList []error
	transactionErr := chr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Conversation{}).
			Where("id = ?", message.ConversationID).
			Update("updated_at", time.Now()).Error; err != nil {
			return err
		}
		return nil
	})
	if transactionErr != nil {
		errorList = append(errorList, transactionErr)
		return nil, errorList
	}
	return message, nil
}

func (chr *ChatRepository) CheckConversationExists(conversationID uint) bool {
	var count int64
	chr.db.Model(&models.Conversation{}).Where("id = ?", conversationID).Count(&count)
	return count > 0
}

func (chr *ChatRepository) CheckUserInConversation(userID string, conversationID uint) bool {
	var count int64
	chr.db.Model(&models.ConversationMember{}).Where("user_id = ? AND conversation_id = ?", userID, conversationID).Count(&count)
	return count > 0
}

func (chr *ChatRepository) GetConversationParticipants(conversationID uint) ([]string, error) {
	var userIDs []string
	if err := chr.db.
		Model(&models.ConversationMember{}).
		Where("conversation_id = ?", conversationID).
		Order("user_id ASC").
		Pluck("user_id", &userIDs).Error; err != nil {
		return nil, err
	}
	return userIDs, nil
}

// SearchUsers is a case-insensitive substring match over identifiers and display
// names. Only users with some trace of activity show up: a sent message or a
// profile row. There is no registry of "all possible users" beyond that.
// A query that is empty after trimming matches nobody.
func (chr *ChatRepository) SearchUsers(query string) ([]string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}, nil
	}
	pattern := "%" + query + "%"

	var userIDs []string
	err := chr.db.Raw(`
		SELECT DISTINCT sender_id AS user_id FROM messages
		WHERE lower(sender_id) LIKE lower(?) AND deleted_at IS NULL
		UNION
		SELECT id AS user_id FROM user_profiles
		WHERE lower(id) LIKE lower(?) OR lower(username) LIKE lower(?)
		ORDER BY user_id ASC`,
		pattern, pattern, pattern,
	).Scan(&userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}
