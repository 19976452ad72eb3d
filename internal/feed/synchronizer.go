package feed

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"photochat/internal/errs"
	"photochat/internal/models"
)

type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Snapshotter loads the full ordered history of a conversation.
type Snapshotter interface {
	GetConversationMessages(conversationID uint) ([]models.Message, error)
}

// Inserter persists a new message. Delivery back to the local sequence happens
// through the live feed, never through the return value.
type Inserter interface {
	SendMessage(ctx context.Context, message *models.Message) (*models.Message, []error)
}

// Uploader stores photo bytes and returns a public URL.
type Uploader interface {
	Upload(ctx context.Context, fileName string, file io.Reader, fileSize int64) (string, error)
}

// Photo is a local photo reference handed to Send.
type Photo struct {
	Name string
	Data io.Reader
	Size int64
}

// Synchronizer owns the ordered in-memory message sequence for one open
// conversation. It reconciles an initial snapshot with the live feed: the
// snapshot is fetched once, then every feed event is appended to the tail in
// arrival order. Sends go to the backend only; the sent message shows up through
// the same feed path as everyone else's, so the local view always reflects
// server-confirmed order.
type Synchronizer struct {
	conversationID uint
	senderID       string

	snapshots Snapshotter
	inserter  Inserter
	uploader  Uploader
	feed      LiveFeed

	mu         sync.Mutex
	state      State
	err        error
	messages   []models.Message
	cancel     context.CancelFunc
	generation uint64

	// updates is replaced on every Open, so events buffered while a previous
	// session was closing are never replayed into the next one.
	updates chan models.Message
}

func NewSynchronizer(
	conversationID uint,
	senderID string,
	snapshots Snapshotter,
	inserter Inserter,
	uploader Uploader,
	feed LiveFeed,
) *Synchronizer {
	return &Synchronizer{
		conversationID: conversationID,
		senderID:       senderID,
		snapshots:      snapshots,
		inserter:       inserter,
		uploader:       uploader,
		feed:           feed,
		state:          StateIdle,
		updates:        make(chan models.Message, 64),
	}
}

// Open loads the snapshot and establishes the live subscription. Any prior
// subscription of this instance is torn down first, so a conversation is never
// subscribed twice. On failure the synchronizer ends up Failed and Retry can be
// used to try again.
func (s *Synchronizer) Open(ctx context.Context) error {
	s.teardown()

	s.mu.Lock()
	s.state = StateLoading
	s.err = nil
	generation := s.generation
	s.mu.Unlock()

	snapshot, err := s.snapshots.GetConversationMessages(s.conversationID)
	if err != nil {
		return s.fail(generation, fmt.Errorf("%w: %v", errs.ErrFetchFailed, err))
	}

	subCtx, cancel := context.WithCancel(ctx)
	live, err := s.feed.Subscribe(subCtx, s.conversationID)
	if err != nil {
		cancel()
		return s.fail(generation, fmt.Errorf("%w: %v", errs.ErrFetchFailed, err))
	}

	s.mu.Lock()
	if s.generation != generation {
		// A concurrent Open or Close superseded this one.
		s.mu.Unlock()
		cancel()
		return errs.ErrSynchronizerClosed
	}
	s.messages = append([]models.Message(nil), snapshot...)
	s.cancel = cancel
	updates := make(chan models.Message, 64)
	s.updates = updates
	s.state = StateReady
	s.mu.Unlock()

	go s.pump(generation, subCtx, live, updates)
	return nil
}

// Retry re-runs the load after a failure.
func (s *Synchronizer) Retry(ctx context.Context) error {
	return s.Open(ctx)
}

// Send validates, uploads the photo if any, then inserts the message record.
// Both parts empty after trimming is a rejected no-op: nothing is uploaded and
// nothing is inserted. The message is never appended locally here.
func (s *Synchronizer) Send(ctx context.Context, text string, photo *Photo) error {
	text = strings.TrimSpace(text)
	if text == "" && photo == nil {
		return errs.ErrEmptyMessage
	}

	var photoURL *string
	if photo != nil {
		url, err := s.uploader.Upload(ctx, photo.Name, photo.Data, photo.Size)
		if err != nil {
			return fmt.Errorf("%w: %v", errs.ErrSendFailed, err)
		}
		photoURL = &url
	}

	message := &models.Message{
		ConversationID: s.conversationID,
		SenderID:       s.senderID,
		Content:        text,
		PhotoURL:       photoURL,
	}
	if _, sendErrs := s.inserter.SendMessage(ctx, message); len(sendErrs) > 0 {
		return fmt.Errorf("%w: %v", errs.ErrSendFailed, sendErrs[0])
	}
	return nil
}

// Close cancels the live subscription. No events are delivered afterwards; the
// instance can be reopened with Open.
func (s *Synchronizer) Close() {
	s.teardown()

	s.mu.Lock()
	s.state = StateIdle
	s.messages = nil
	s.err = nil
	s.mu.Unlock()
}

// Messages returns a copy of the ordered sequence.
func (s *Synchronizer) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.messages...)
}

// Updates streams messages appended after the snapshot of the current open
// session. Each Open hands out a fresh channel; callers that reopen must call
// Updates again.
func (s *Synchronizer) Updates() <-chan models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updates
}

func (s *Synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Synchronizer) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Synchronizer) ConversationID() uint {
	return s.conversationID
}

// teardown cancels any active subscription and bumps the generation so a pump
// started under the old one can never append again. The updates channel is
// swapped out as well: anything still buffered from the closed session stays
// unreachable even if the next Open fails.
func (s *Synchronizer) teardown() {
	s.mu.Lock()
	s.generation++
	cancel := s.cancel
	s.cancel = nil
	s.updates = make(chan models.Message, 64)
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (s *Synchronizer) fail(generation uint64, err error) error {
	s.mu.Lock()
	if s.generation == generation {
		s.state = StateFailed
		s.err = err
	}
	s.mu.Unlock()
	return err
}

func (s *Synchronizer) pump(generation uint64, ctx context.Context, live <-chan models.Message, updates chan<- models.Message) {
	for message := range live {
		s.mu.Lock()
		if s.generation != generation || s.state != StateReady {
			s.mu.Unlock()
			return
		}
		s.messages = append(s.messages, message)
		s.mu.Unlock()

		// Canceling the subscription also releases a pump stuck on a full
		// buffer with no consumer left.
		select {
		case updates <- message:
		case <-ctx.Done():
			return
		}
	}
}
