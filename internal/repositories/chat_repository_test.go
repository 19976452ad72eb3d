package repositories

import (
	"path/filepath"
	"testing"

	"photochat/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "chat.db")), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.UserProfile{},
		&models.Conversation{},
		&models.ConversationMember{},
		&models.Message{},
	)
	if err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

func mustCreateDirect(t *testing.T, repo *ChatRepository, a, b string) *models.Conversation {
	t.Helper()
	conversation, errs := repo.CreateDirectConversation(a, b)
	if len(errs) > 0 {
		t.Fatalf("CreateDirectConversation(%q, %q): %v", a, b, errs)
	}
	return conversation
}

func mustSaveMessage(t *testing.T, repo *ChatRepository, conversationID uint, senderID, content string) *models.Message {
	t.Helper()
	message, errs := repo.SaveMessage(&models.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	})
	if len(errs) > 0 {
		t.Fatalf("SaveMessage: %v", errs)
	}
	return message
}

func TestCreateDirectConversationIsIdempotent(t *testing.T) {
	repo := NewChatRepository(openTestDB(t))

	first := mustCreateDirect(t, repo, "User_aaaaaaaa", "User_bbbbbbbb")
	// Same pair in the opposite order must land on the same conversation.
	second := mustCreateDirect(t, repo, "User_bbbbbbbb", "User_aaaaaaaa")

	if first.ID != second.ID {
		t.Fatalf("created two conversations for one pair: %d and %d", first.ID, second.ID)
	}
	if len(second.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(second.Members))
	}

	var count int64
	repo.db.Model(&models.Conversation{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 conversation row, got %d", count)
	}
}

func TestFindDirectConversationIsSymmetric(t *testing.T) {
	repo := NewChatRepository(openTestDB(t))
	created := mustCreateDirect(t, repo, "User_aaaaaaaa", "User_bbbbbbbb")

	forward, err := repo.FindDirectConversation("User_aaaaaaaa", "User_bbbbbbbb")
	if err != nil || forward == nil {
		t.Fatalf("forward lookup failed: %v, %v", forward, err)
	}
	reverse, err := repo.FindDirectConversation("User_bbbbbbbb", "User_aaaaaaaa")
	if err != nil || reverse == nil {
		t.Fatalf("reverse lookup failed: %v, %v", reverse, err)
	}
	if forward.ID != created.ID || reverse.ID != created.ID {
		t.Fatalf("lookups disagree: created %d, forward %d, reverse %d", created.ID, forward.ID, reverse.ID)
	}

	missing, err := repo.FindDirectConversation("User_aaaaaaaa", "User_cccccccc")
	if err != nil {
		t.Fatalf("lookup for absent pair errored: %v", err)
	}
	if missing != nil {
		t.Fatalf("lookup for absent pair returned %d", missing.ID)
	}
}

func TestGetConversationMessagesOrdering(t *testing.T) {
	repo := NewChatRepository(openTestDB(t))
	conversation := mustCreateDirect(t, repo, "User_aaaaaaaa", "User_bbbbbbbb")

	mustSaveMessage(t, repo, conversation.ID, "User_aaaaaaaa", "one")
	mustSaveMessage(t, repo, conversation.ID, "User_bbbbbbbb", "two")
	mustSaveMessage(t, repo, conversation.ID, "User_aaaaaaaa", "three")

	messages, err := repo.GetConversationMessages(conversation.ID)
	if err != nil {
		t.Fatalf("GetConversationMessages: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	for i, want := range []string{"one", "two", "three"} {
		if messages[i].Content != want {
			t.Fatalf("message %d = %q, want %q", i, messages[i].Content, want)
		}
	}

	last, err := repo.GetConversationLastMessage(conversation.ID)
	if err != nil {
		t.Fatalf("GetConversationLastMessage: %v", err)
	}
	if last.Content != "three" {
		t.Fatalf("last message = %q, want %q", last.Content, "three")
	}
}

func TestGetMessagesByConversationIdPagination(t *testing.T) {
	repo := NewChatRepository(openTestDB(t))
	conversation := mustCreateDirect(t, repo, "User_aaaaaaaa", "User_bbbbbbbb")

	for _, content := range []string{"one", "two", "three"} {
		mustSaveMessage(t, repo, conversation.ID, "User_aaaaaaaa", content)
	}

	page, errs := repo.GetMessagesByConversationId(conversation.ID, 1, 2)
	if len(errs) > 0 {
		t.Fatalf("GetMessagesByConversationId: %v", errs)
	}
	if page.Total != 3 {
		t.Fatalf("total = %d, want 3", page.Total)
	}
	if len(page.Messages) != 2 || page.Messages[0].Content != "one" || page.Messages[1].Content != "two" {
		t.Fatalf("unexpected first page: %+v", page.Messages)
	}

	page, errs = repo.GetMessagesByConversationId(conversation.ID, 2, 2)
	if len(errs) > 0 {
		t.Fatalf("GetMessagesByConversationId page 2: %v", errs)
	}
	if len(page.Messages) != 1 || page.Messages[0].Content != "three" {
		t.Fatalf("unexpected second page: %+v", page.Messages)
	}
}

func TestMembershipChecks(t *testing.T) {
	repo := NewChatRepository(openTestDB(t))
	conversation := mustCreateDirect(t, repo, "User_aaaaaaaa", "User_bbbbbbbb")

	if !repo.CheckConversationExists(conversation.ID) {
		t.Fatal("CheckConversationExists = false for an existing conversation")
	}
	if repo.CheckConversationExists(conversation.ID + 100) {
		t.Fatal("CheckConversationExists = true for an absent conversation")
	}
	if !repo.CheckUserInConversation("User_aaaaaaaa", conversation.ID) {
		t.Fatal("member reported as not in conversation")
	}
	if repo.CheckUserInConversation("User_cccccccc", conversation.ID) {
		t.Fatal("non-member reported as in conversation")
	}

	participants, err := repo.GetConversationParticipants(conversation.ID)
	if err != nil {
		t.Fatalf("GetConversationParticipants: %v", err)
	}
	if len(participants) != 2 || participants[0] != "User_aaaaaaaa" || participants[1] != "User_bbbbbbbb" {
		t.Fatalf("unexpected participants: %v", participants)
	}
}

func TestGetUserConversations(t *testing.T) {
	repo := NewChatRepository(openTestDB(t))
	withB := mustCreateDirect(t, repo, "User_aaaaaaaa", "User_bbbbbbbb")
	mustCreateDirect(t, repo, "User_aaaaaaaa", "User_cccccccc")
	mustCreateDirect(t, repo, "User_bbbbbbbb", "User_cccccccc")

	mustSaveMessage(t, repo, withB.ID, "User_bbbbbbbb", "hi")

	listing, errs := repo.GetUserConversations("User_aaaaaaaa", 1, 10)
	if len(errs) > 0 {
		t.Fatalf("GetUserConversations: %v", errs)
	}
	if listing.Total != 2 {
		t.Fatalf("total = %d, want 2", listing.Total)
	}
	if len(listing.Conversations) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(listing.Conversations))
	}
	for _, conversation := range listing.Conversations {
		if conversation.ID == withB.ID {
			if conversation.LastMessage == nil || conversation.LastMessage.Content != "hi" {
				t.Fatalf("last message missing on conversation %d", conversation.ID)
			}
		}
	}
}

func TestSearchUsers(t *testing.T) {
	db := openTestDB(t)
	repo := NewChatRepository(db)
	conversation := mustCreateDirect(t, repo, "User_AlphaOne", "User_BetaTwoo")
	mustSaveMessage(t, repo, conversation.ID, "User_AlphaOne", "hello")

	username := "Charlie"
	db.Create(&models.UserProfile{ID: "acc-1", Username: username})

	got, err := repo.SearchUsers("alphaone")
	if err != nil {
		t.Fatalf("SearchUsers: %v", err)
	}
	if len(got) != 1 || got[0] != "User_AlphaOne" {
		t.Fatalf("case-insensitive sender search failed: %v", got)
	}

	got, err = repo.SearchUsers("charlie")
	if err != nil {
		t.Fatalf("SearchUsers by username: %v", err)
	}
	if len(got) != 1 || got[0] != "acc-1" {
		t.Fatalf("username search failed: %v", got)
	}

	got, err = repo.SearchUsers("nobody")
	if err != nil {
		t.Fatalf("SearchUsers with no matches: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}

	// Whitespace-only queries match nobody instead of everything.
	for _, query := range []string{"", "   ", "\t\n"} {
		got, err = repo.SearchUsers(query)
		if err != nil {
			t.Fatalf("SearchUsers(%q): %v", query, err)
		}
		if len(got) != 0 {
			t.Fatalf("SearchUsers(%q) matched %v", query, got)
		}
	}

	// A padded query is trimmed, not taken literally.
	got, err = repo.SearchUsers("  alphaone  ")
	if err != nil {
		t.Fatalf("SearchUsers with padding: %v", err)
	}
	if len(got) != 1 || got[0] != "User_AlphaOne" {
		t.Fatalf("padded query not trimmed: %v", got)
	}
}
