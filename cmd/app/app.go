package app

import (
	"context"
	"sync"

	"photochat/configs"
	"photochat/internal/feed"
	"photochat/internal/handlers"
	"photochat/internal/identity"
	"photochat/internal/logger"
	"photochat/internal/repositories"
	"photochat/internal/servers/database"
	"photochat/internal/servers/http"
	"photochat/internal/services"

	"github.com/redis/go-redis/v9"
)

var (
	app  *App
	once sync.Once
)

type App struct {
	redis   *redis.Client
	ctx     context.Context
	configs *configs.Config
}

func GetApp() *App {
	once.Do(func() {
		app = &App{}
	})
	return app
}

func (app *App) LetsGo() {
	app.ctx = context.Background()
	app.initializeConfigs()
	logger.Init(app.configs.Viper.GetBool("app.development"))
	app.initializeRedis()

	db := database.GetDB(app.configs)
	profileRepo := repositories.NewProfileRepository(db)
	authService := services.NewAuthenticationService(profileRepo, app.configs)

	liveFeed := feed.NewRedisFeed(app.redis)
	chatRepo := repositories.NewChatRepository(db)
	chatService := services.NewChatService(chatRepo, liveFeed)

	minioService := services.NewMinioService(app.configs)
	attachmentService := services.NewAttachmentService(minioService)

	deviceID := app.resolveDeviceIdentity()

	restHandler := handlers.NewRestHandler(authService, chatService, attachmentService)
	socketChatHandler := handlers.NewSocketChatHandler(chatService, attachmentService, liveFeed)
	htmlHandler := handlers.NewHtmlHandler(deviceID)

	http.NewHttpServer(
		app.ctx,
		app.configs,
		restHandler,
		socketChatHandler,
		htmlHandler,
	).Run()
}

func (app *App) initializeRedis() {
	app.redis = redis.NewClient(&redis.Options{
		Addr: app.configs.Viper.GetString("redis.addr"),
	})
}

func (app *App) initializeConfigs() {
	app.configs = configs.GetConfig()
}

// resolveDeviceIdentity loads or creates this install's identifier. On storage
// failure it returns an empty id; the demo page then serves an unavailable
// response rather than inventing a temporary identity.
func (app *App) resolveDeviceIdentity() string {
	dataDir := app.configs.Viper.GetString("identity.data_dir")
	if dataDir == "" {
		var err error
		dataDir, err = identity.ResolveDataDir()
		if err != nil {
			logger.Errorf("Failed to resolve identity data dir: %v", err)
			return ""
		}
	}

	store, err := identity.OpenStore(dataDir)
	if err != nil {
		logger.Errorf("Failed to open identity store: %v", err)
		return ""
	}

	deviceID, err := identity.NewResolver(store).Resolve()
	if err != nil {
		logger.Errorf("Failed to resolve device identity: %v", err)
		return ""
	}
	logger.Infof("Resolved device identity %s", deviceID)
	return deviceID
}
