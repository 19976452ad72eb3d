package services

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"photochat/internal/enums"
	"photochat/internal/errs"
	"photochat/internal/feed"
	"photochat/internal/models"
	"photochat/internal/repositories"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type recordingFeed struct {
	mu     sync.Mutex
	events []feed.Event
}

func (rf *recordingFeed) Publish(ctx context.Context, event feed.Event) error {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	rf.events = append(rf.events, event)
	return nil
}

func (rf *recordingFeed) Subscribe(ctx context.Context, conversationID uint) (<-chan models.Message, error) {
	ch := make(chan models.Message)
	close(ch)
	return ch, nil
}

func newTestChatService(t *testing.T) (*ChatService, *recordingFeed) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "chat.db")), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Conversation{},
		&models.ConversationMember{},
		&models.Message{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	liveFeed := &recordingFeed{}
	return NewChatService(repositories.NewChatRepository(db), liveFeed), liveFeed
}

func TestSendMessagePublishesAfterCommit(t *testing.T) {
	service, liveFeed := newTestChatService(t)
	conversation, createErrs := service.CreateDirectConversation("User_aaaaaaaa", "User_bbbbbbbb")
	if len(createErrs) > 0 {
		t.Fatalf("CreateDirectConversation: %v", createErrs)
	}

	saved, sendErrs := service.SendMessage(context.Background(), &models.Message{
		ConversationID: conversation.ID,
		SenderID:       "User_aaaaaaaa",
		Content:        "hello",
	})
	if len(sendErrs) > 0 {
		t.Fatalf("SendMessage: %v", sendErrs)
	}
	if saved.ID == 0 {
		t.Fatal("message not assigned an id")
	}

	if len(liveFeed.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(liveFeed.events))
	}
	event := liveFeed.events[0]
	if event.Event != enums.SOCKET_EVENT_NEW_MESSAGE {
		t.Fatalf("event type = %q", event.Event)
	}
	if event.ConversationID != conversation.ID || event.Message.ID != saved.ID {
		t.Fatalf("published wrong event: %+v", event)
	}
}

func TestSendMessageRejectsInvalid(t *testing.T) {
	service, liveFeed := newTestChatService(t)

	_, sendErrs := service.SendMessage(context.Background(), &models.Message{
		ConversationID: 1,
		SenderID:       "User_aaaaaaaa",
		Content:        "   ",
	})
	if len(sendErrs) == 0 || !errors.Is(sendErrs[0], errs.ErrEmptyMessage) {
		t.Fatalf("SendMessage = %v, want ErrEmptyMessage", sendErrs)
	}
	if len(liveFeed.events) != 0 {
		t.Fatalf("rejected message was published: %+v", liveFeed.events)
	}
}

func TestGetConversationLastMessage(t *testing.T) {
	service, _ := newTestChatService(t)
	conversation, createErrs := service.CreateDirectConversation("User_aaaaaaaa", "User_bbbbbbbb")
	if len(createErrs) > 0 {
		t.Fatalf("CreateDirectConversation: %v", createErrs)
	}

	if last, err := service.GetConversationLastMessage(conversation.ID); err == nil && last != nil {
		t.Fatalf("empty conversation reported a last message: %+v", last)
	}

	for _, content := range []string{"first", "second"} {
		_, sendErrs := service.SendMessage(context.Background(), &models.Message{
			ConversationID: conversation.ID,
			SenderID:       "User_aaaaaaaa",
			Content:        content,
		})
		if len(sendErrs) > 0 {
			t.Fatalf("SendMessage(%q): %v", content, sendErrs)
		}
	}

	last, err := service.GetConversationLastMessage(conversation.ID)
	if err != nil {
		t.Fatalf("GetConversationLastMessage: %v", err)
	}
	if last.Content != "second" {
		t.Fatalf("last message = %q, want %q", last.Content, "second")
	}
}

func TestCreateDirectConversationRejectsSelf(t *testing.T) {
	service, _ := newTestChatService(t)

	_, createErrs := service.CreateDirectConversation("User_aaaaaaaa", "User_aaaaaaaa")
	if len(createErrs) == 0 || !errors.Is(createErrs[0], errs.ErrSelfConversation) {
		t.Fatalf("CreateDirectConversation = %v, want ErrSelfConversation", createErrs)
	}
}
