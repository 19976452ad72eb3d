package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"

	"photochat/internal/enums"
	"photochat/internal/errs"
	"photochat/internal/feed"
	"photochat/internal/logger"
	"photochat/internal/models"
	"photochat/internal/msgs"
	"photochat/internal/services"
	"photochat/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type SocketChatHandler struct {
	upgrader          websocket.Upgrader
	hub               *models.SocketHub
	chatService       *services.ChatService
	attachmentService *services.AttachmentService
	liveFeed          feed.LiveFeed
}

func NewSocketChatHandler(
	chatService *services.ChatService,
	attachmentService *services.AttachmentService,
	liveFeed feed.LiveFeed,
) *SocketChatHandler {
	return &SocketChatHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		hub: &models.SocketHub{
			Conversations: make(map[uint][]*models.SocketClient),
		},
		chatService:       chatService,
		attachmentService: attachmentService,
		liveFeed:          liveFeed,
	}
}

// HandleSocketRoute upgrades the connection and runs one synchronizer for the
// requested conversation: snapshot first as a history event, then every live
// message as it arrives, for the lifetime of the connection.
func (sch *SocketChatHandler) HandleSocketRoute(ctx *gin.Context) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, models.Response{
			Success: false,
			Message: msgs.MsgYouMustLoginFirst,
			Errors:  models.ErrorStrings([]error{errs.ErrUnauthorized}),
		})
		return
	}

	conversationIDInt, err := strconv.Atoi(ctx.Query("conversationId"))
	if err != nil || conversationIDInt < 1 {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrInvalidConversationId}),
		})
		return
	}
	conversationID := uint(conversationIDInt)

	if !sch.chatService.CheckConversationExists(conversationID) {
		ctx.AbortWithStatusJSON(http.StatusNotFound, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrConversationNotFound}),
		})
		return
	}
	if !sch.chatService.CheckUserInConversation(userID, conversationID) {
		ctx.AbortWithStatusJSON(http.StatusForbidden, models.Response{
			Success: false,
			Message: msgs.MsgOperationFailed,
			Errors:  models.ErrorStrings([]error{errs.ErrNotAMember}),
		})
		return
	}

	conn, err := sch.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		logger.Errorf("Error upgrading connection to websocket: %v", err)
		return
	}

	client := &models.SocketClient{Conn: conn, UserId: userID}
	sch.addClientToHub(conversationID, client)

	syncer := feed.NewSynchronizer(
		conversationID,
		userID,
		sch.chatService,
		sch.chatService,
		sch.attachmentService,
		sch.liveFeed,
	)

	done := make(chan struct{})
	if err := syncer.Open(ctx.Request.Context()); err != nil {
		sch.writeError(client, conversationID, err)
	} else {
		sch.writeHistory(client, conversationID, syncer.Messages())
		go sch.writeLoop(client, conversationID, syncer.Updates(), syncer, done)
	}
	sch.readLoop(ctx, client, conversationID, syncer, done)
}

func (sch *SocketChatHandler) readLoop(ctx *gin.Context, client *models.SocketClient, conversationID uint, syncer *feed.Synchronizer, done chan struct{}) {
	defer func() {
		close(done)
		syncer.Close()
		sch.removeClientFromHub(conversationID, client)
		client.Conn.Close()
	}()

	for {
		_, raw, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Errorf("Error reading socket message: %v", err)
			}
			return
		}

		var event models.SocketEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			sch.writeError(client, conversationID, errs.ErrInvalidRequestBody)
			continue
		}

		switch event.Event {
		case enums.SOCKET_EVENT_SEND_MESSAGE:
			sch.handleSendMessage(ctx, client, conversationID, syncer, event.Payload)
		case enums.SOCKET_EVENT_RETRY:
			if err := syncer.Retry(ctx.Request.Context()); err != nil {
				sch.writeError(client, conversationID, err)
				continue
			}
			sch.writeHistory(client, conversationID, syncer.Messages())
			// Retry opened a fresh session; the forwarder has to re-bind to
			// its updates channel.
			go sch.writeLoop(client, conversationID, syncer.Updates(), syncer, done)
		default:
			sch.writeError(client, conversationID, errs.ErrInvalidRequest)
		}
	}
}

func (sch *SocketChatHandler) handleSendMessage(ctx *gin.Context, client *models.SocketClient, conversationID uint, syncer *feed.Synchronizer, raw json.RawMessage) {
	var payload models.SendMessagePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		sch.writeError(client, conversationID, errs.ErrInvalidRequestBody)
		return
	}

	var photo *feed.Photo
	if payload.PhotoData != "" {
		data, err := base64.StdEncoding.DecodeString(payload.PhotoData)
		if err != nil {
			sch.writeError(client, conversationID, errs.ErrInvalidRequestBody)
			return
		}
		photo = &feed.Photo{
			Name: payload.PhotoName,
			Data: bytes.NewReader(data),
			Size: int64(len(data)),
		}
	}

	if err := syncer.Send(ctx.Request.Context(), payload.Content, photo); err != nil {
		sch.writeError(client, conversationID, err)
	}
}

// writeLoop forwards one session's live messages to the client. It exits when
// the connection goes away or its channel is superseded by a retry; a stale
// event read off a superseded channel is dropped, the fresh session's history
// already covers it.
func (sch *SocketChatHandler) writeLoop(client *models.SocketClient, conversationID uint, updates <-chan models.Message, syncer *feed.Synchronizer, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case message := <-updates:
			if syncer.Updates() != updates {
				return
			}
			payload, err := json.Marshal(message)
			if err != nil {
				logger.Errorf("Error marshalling message for socket delivery: %v", err)
				continue
			}
			err = client.WriteEvent(models.SocketEvent{
				Event:          enums.SOCKET_EVENT_NEW_MESSAGE,
				ConversationID: conversationID,
				Payload:        payload,
			})
			if err != nil {
				return
			}
		}
	}
}

func (sch *SocketChatHandler) writeHistory(client *models.SocketClient, conversationID uint, messages []models.Message) {
	payload, err := json.Marshal(messages)
	if err != nil {
		logger.Errorf("Error marshalling message history: %v", err)
		return
	}
	err = client.WriteEvent(models.SocketEvent{
		Event:          enums.SOCKET_EVENT_HISTORY,
		ConversationID: conversationID,
		Payload:        payload,
	})
	if err != nil {
		logger.Errorf("Error writing message history to socket: %v", err)
	}
}

func (sch *SocketChatHandler) writeError(client *models.SocketClient, conversationID uint, failure error) {
	payload, err := json.Marshal(models.ErrorStrings([]error{failure}))
	if err != nil {
		return
	}
	err = client.WriteEvent(models.SocketEvent{
		Event:          enums.SOCKET_EVENT_ERROR,
		ConversationID: conversationID,
		Payload:        payload,
	})
	if err != nil {
		logger.Errorf("Error writing error event to socket: %v", err)
	}
}

func (sch *SocketChatHandler) addClientToHub(conversationID uint, client *models.SocketClient) {
	sch.hub.Mu.Lock()
	defer sch.hub.Mu.Unlock()
	sch.hub.Conversations[conversationID] = append(sch.hub.Conversations[conversationID], client)
}

func (sch *SocketChatHandler) removeClientFromHub(conversationID uint, client *models.SocketClient) {
	sch.hub.Mu.Lock()
	defer sch.hub.Mu.Unlock()
	clients := sch.hub.Conversations[conversationID]
	for i, c := range clients {
		if c == client {
			sch.hub.Conversations[conversationID] = append(clients[:i], clients[i+1:]...)
			break
		}
	}
	if len(sch.hub.Conversations[conversationID]) == 0 {
		delete(sch.hub.Conversations, conversationID)
	}
}

// CloseAll terminates every open socket; used on server shutdown.
func (sch *SocketChatHandler) CloseAll() {
	sch.hub.Mu.Lock()
	defer sch.hub.Mu.Unlock()
	for conversationID, clients := range sch.hub.Conversations {
		for _, client := range clients {
			client.Conn.Close()
		}
		delete(sch.hub.Conversations, conversationID)
	}
}
