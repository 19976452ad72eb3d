package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"photochat/configs"
	"photochat/internal/handlers"
	"photochat/internal/logger"

	"github.com/gin-gonic/gin"
)

var (
	httpServer *HttpServer
	once       sync.Once
)

type HttpServer struct {
	ctx               context.Context
	configs           *configs.Config
	router            *gin.Engine
	restHandler       *handlers.RestHandler
	socketChatHandler *handlers.SocketChatHandler
	htmlHandler       *handlers.HtmlHandler
}

func NewHttpServer(
	ctx context.Context,
	configs *configs.Config,
	restHandler *handlers.RestHandler,
	socketChatHandler *handlers.SocketChatHandler,
	htmlHandler *handlers.HtmlHandler,
) *HttpServer {
	once.Do(func() {
		httpServer = &HttpServer{
			ctx:               ctx,
			configs:           configs,
			restHandler:       restHandler,
			socketChatHandler: socketChatHandler,
			htmlHandler:       htmlHandler,
		}
	})
	return httpServer
}

func (hs *HttpServer) Run() {
	hs.initializeGin()
	hs.setupRoutes()

	server := hs.startServer()
	hs.waitForShutdown(server)
}

func (hs *HttpServer) initializeGin() {
	if !hs.configs.Viper.GetBool("app.development") {
		gin.SetMode(gin.ReleaseMode)
	}
	hs.router = gin.Default()
	hs.router.LoadHTMLGlob("./*.html")
}

func (hs *HttpServer) setupRoutes() {
	hs.router.GET("/", hs.htmlHandler.Index)
	hs.router.POST("/register", hs.restHandler.Register)
	hs.router.POST("/login", hs.restHandler.Login)

	authorized := hs.router.Group("/")
	authorized.Use(hs.restHandler.MustAuthenticateMiddleware())
	{
		authorized.GET("/users", hs.restHandler.GetAllUsersWithPagination)
		authorized.GET("/users/search", hs.restHandler.SearchUsers)
		authorized.GET("/users/:id", hs.restHandler.GetSingleUser)
		authorized.PUT("/users", hs.restHandler.UpdateUser)

		authorized.GET("/conversations", hs.restHandler.GetUserConversations)
		authorized.POST("/conversations/direct", hs.restHandler.CreateDirectConversation)
		authorized.GET("/conversations/:id/participants", hs.restHandler.GetConversationParticipants)
		authorized.GET("/conversations/:id/messages", hs.restHandler.GetMessagesByConversationID)
		authorized.POST("/messages", hs.restHandler.SendMessage)

		authorized.GET("/ws/chat", hs.socketChatHandler.HandleSocketRoute)
	}

	hs.router.NoRoute(hs.htmlHandler.NotFound)
}

func (hs *HttpServer) startServer() *http.Server {
	addr := fmt.Sprintf(":%d", hs.configs.Viper.GetInt("server.port"))
	server := &http.Server{
		Addr:    addr,
		Handler: hs.router,
	}

	go func() {
		logger.Infof("HTTP server started on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	return server
}

func (hs *HttpServer) waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("Shutting down server...")

	hs.socketChatHandler.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(hs.ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Infof("Server exiting")
}
