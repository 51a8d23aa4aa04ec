package bootstrap

import (
	"context"
	"log"

	"sales-assistant-be/internal/config"
	"sales-assistant-be/internal/controller"
	"sales-assistant-be/internal/pkg/logger"
	"sales-assistant-be/internal/repository/unitofwork"
	"sales-assistant-be/internal/service"
	"sales-assistant-be/pkg/store"

	pktNats "sales-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	ProductController controller.IProductController
	ChatController    controller.IChatController

	// Background services (exposed for main.go to run)
	StockAlertService service.IStockAlertService

	// Shared infrastructure
	Revocations *store.RevocationStore
	Logger      logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	alertBus := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	revocations := store.NewRevocationStore(rdb)

	// 4. Services
	authService := service.NewAuthService(uowFactory, revocations, natsPub, cfg.App.JwtSecret)
	productService := service.NewProductService(uowFactory, natsPub, alertBus)
	chatService := service.NewChatService(uowFactory, productService)
	stockAlertService := service.NewStockAlertService(alertBus, sysLogger)

	// 5. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService),
		ProductController: controller.NewProductController(productService),
		ChatController:    controller.NewChatController(chatService),
		StockAlertService: stockAlertService,
		Revocations:       revocations,
		Logger:            sysLogger,
	}
}
