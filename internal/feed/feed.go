package feed

import (
	"context"
	"encoding/json"
	"fmt"

	"photochat/internal/enums"
	"photochat/internal/logger"
	"photochat/internal/models"

	"github.com/redis/go-redis/v9"
)

// Event is the payload published for every committed message, one redis channel
// per conversation.
type Event struct {
	Event          string         `json:"event"`
	ConversationID uint           `json:"conversation_id"`
	Message        models.Message `json:"message"`
}

func ChannelFor(conversationID uint) string {
	return fmt.Sprintf("chat:conversation:%d", conversationID)
}

// LiveFeed is the change-notification channel: every message committed to a
// conversation is delivered to all of its active subscribers, in publish order.
type LiveFeed interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(ctx context.Context, conversationID uint) (<-chan models.Message, error)
}

type RedisFeed struct {
	rdb *redis.Client
}

func NewRedisFeed(rdb *redis.Client) *RedisFeed {
	return &RedisFeed{
		rdb: rdb,
	}
}

func (rf *RedisFeed) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return rf.rdb.Publish(ctx, ChannelFor(event.ConversationID), payload).Err()
}

// Subscribe opens a subscription scoped to one conversation. The returned
// channel closes when ctx is canceled or the connection drops; it delivers
// messages in the order redis fans them out.
func (rf *RedisFeed) Subscribe(ctx context.Context, conversationID uint) (<-chan models.Message, error) {
	pubsub := rf.rdb.Subscribe(ctx, ChannelFor(conversationID))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	ch := pubsub.Channel()
	out := make(chan models.Message, 64)

	go func() {
		defer close(out)
		defer pubsub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					logger.Errorf("Error unmarshalling feed event: %v", err)
					continue
				}
				if event.Event != enums.SOCKET_EVENT_NEW_MESSAGE {
					continue
				}
				select {
				case out <- event.Message:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}
