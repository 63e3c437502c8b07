package config

import (
	"agent-portal-service/src/internal/delivery/http"
	"agent-portal-service/src/internal/delivery/http/middleware"
	"agent-portal-service/src/internal/delivery/http/route"
	"agent-portal-service/src/internal/gateway/backend"
	"agent-portal-service/src/internal/usecase"
	"agent-portal-service/src/internal/worker"
	"agent-portal-service/src/pkg/guard"
	"agent-portal-service/src/pkg/log"
	"agent-portal-service/src/pkg/session"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

type BootstrapConfig struct {
	App         *fiber.App
	Log         log.Log
	Validate    *validator.Validate
	Config      *viper.Viper
	Redis       redis.UniversalClient
	Backend     *backend.Client
	AsynqClient *asynq.Client
	Async       *asynq.ServeMux
}

func Bootstrap(config *BootstrapConfig) {
	// setup gateways
	catalogGateway := backend.NewCatalogGateway(config.Backend)
	cartGateway := backend.NewCartGateway(config.Backend)
	orderGateway := backend.NewOrderGateway(config.Backend)
	walletGateway := backend.NewWalletGateway(config.Backend)
	announcementGateway := backend.NewAnnouncementGateway(config.Backend)
	storefrontGateway := backend.NewStorefrontGateway(config.Backend)

	sessions := session.NewStore(config.Redis, config.Config.GetDuration("session.ttl"))
	slotGuard := guard.New()

	// setup use cases
	sessionUseCase := usecase.NewSessionUseCase(
		config.Log,
		config.Validate,
		sessions,
		config.Config,
	)
	cartUseCase := usecase.NewCartUseCase(
		config.Log,
		config.Validate,
		cartGateway,
		catalogGateway,
		orderGateway,
		walletGateway,
		config.Config,
		config.Redis,
		slotGuard,
	)
	orderUseCase := usecase.NewOrderUseCase(
		config.Log,
		config.Validate,
		orderGateway,
		config.Config,
		config.Redis,
	)
	bulkUseCase := usecase.NewBulkUseCase(
		config.Log,
		config.Validate,
		orderGateway,
		config.Config,
		config.Redis,
		slotGuard,
	)
	transactionUseCase := usecase.NewTransactionUseCase(
		config.Log,
		config.Validate,
		walletGateway,
		config.Config,
		config.Redis,
	)
	notificationUseCase := usecase.NewNotificationUseCase(
		config.Log,
		config.Validate,
		announcementGateway,
		config.Config,
		config.Redis,
	)
	walletUseCase := usecase.NewWalletUseCase(
		config.Log,
		config.Validate,
		walletGateway,
		config.Config,
		config.Redis,
		slotGuard,
	)
	storefrontUseCase := usecase.NewStorefrontUseCase(
		config.Log,
		config.Validate,
		storefrontGateway,
		catalogGateway,
		config.Config,
		slotGuard,
	)

	// setup controllers
	sessionController := http.NewSessionController(sessionUseCase, config.Log)
	cartController := http.NewCartController(cartUseCase, config.Log)
	orderController := http.NewOrderController(orderUseCase, bulkUseCase, config.Log)
	transactionController := http.NewTransactionController(transactionUseCase, config.Log)
	notificationController := http.NewNotificationController(notificationUseCase, config.Log)
	storefrontController := http.NewStorefrontController(storefrontUseCase, config.Log)
	walletController := http.NewWalletController(walletUseCase, config.Log)

	// setup middleware
	authMiddleware := middleware.VerifyBearer(config.Config)

	// background refreshers for every active session
	refresher := worker.NewRefresher(config.Log, sessions, walletUseCase, notificationUseCase)
	config.Async.HandleFunc(worker.TypeWalletRefresh, refresher.HandleWalletRefresh)
	config.Async.HandleFunc(worker.TypeAnnouncementPoll, refresher.HandleAnnouncementPoll)

	routeConfig := route.RouteConfig{
		App:                    config.App,
		SessionController:      sessionController,
		CartController:         cartController,
		OrderController:        orderController,
		TransactionController:  transactionController,
		NotificationController: notificationController,
		StorefrontController:   storefrontController,
		WalletController:       walletController,
		AuthMiddleware:         authMiddleware,
	}
	routeConfig.Setup()
}
