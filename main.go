package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/raj9661/paniwalaa-backend/controllers"
	"github.com/raj9661/paniwalaa-backend/database"
	"github.com/raj9661/paniwalaa-backend/kafka"
	"github.com/raj9661/paniwalaa-backend/middleware"
	"github.com/raj9661/paniwalaa-backend/models"
	aws_pkg "github.com/raj9661/paniwalaa-backend/pkg/aws"
	"github.com/raj9661/paniwalaa-backend/repository"
	"github.com/raj9661/paniwalaa-backend/routes"
	"github.com/raj9661/paniwalaa-backend/services"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	cfg, err := LoadConfig()
	if err != nil {
		logger.Fatal("Config load failed", zap.Error(err))
	}

	// --- Database ---
	db, err := database.Connect(database.Config{
		User:     cfg.PostgresUser,
		Password: cfg.PostgresPassword,
		Name:     cfg.PostgresDB,
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		SSLMode:  cfg.PostgresSSLMode,
		TimeZone: cfg.PostgresTimeZone,
	}, logger,
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.FulfillmentLocation{},
		&models.PincodeMapping{},
		&models.DeliveryPartner{},
		&models.LocationStock{},
		&models.StockTransaction{},
		&models.PromoCode{},
		&models.Order{},
		&models.SiteSettings{},
		&models.ContactMessage{},
	)
	if err != nil {
		logger.Fatal("DB connection failed", zap.Error(err))
	}

	// --- Redis (rate limiting) ---
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Warn("Redis unreachable, rate limiting degrades to allow-all", zap.Error(err))
	}

	// --- AWS setup ---
	awsCfg, err := aws_pkg.LoadAWSConfig(context.Background())
	if err != nil {
		logger.Fatal("Failed to load AWS config", zap.Error(err))
	}
	snsClient := aws_pkg.NewSNSClient(awsCfg)

	// --- Kafka ---
	orderProducer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaOrderTopic, logger)
	defer orderProducer.Close()

	// --- HTTP router ---
	r := gin.New()
	r.Use(gin.Recovery())

	// CloudWatch metrics (non-fatal)
	metricsClient, err := aws_pkg.NewMetricsClient(context.Background())
	if err != nil {
		logger.Warn("CloudWatch metrics client init failed (non-fatal)", zap.Error(err))
	}
	r.Use(middleware.MetricsMiddleware(metricsClient, "paniwalaa-backend"))
	r.Use(middleware.RequestLogger(logger))

	// Request timeout middleware
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	// --- Dependency injection ---
	txManager := repository.NewGormTxManager(db)
	orderRepo := repository.NewGormOrderRepository(db)
	inventoryRepo := repository.NewGormInventoryRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	userRepo := repository.NewGormUserRepository(db)
	partnerRepo := repository.NewGormPartnerRepository(db)
	settingsRepo := repository.NewGormSettingsRepository(db)
	locationRepo := repository.NewGormLocationRepository(db)
	promoRepo := repository.NewGormPromoRepository(db)
	contactRepo := repository.NewGormContactRepository(db)

	deliverability := services.NewDeliverabilityService(locationRepo, logger)
	promoService := services.NewPromoService(promoRepo, orderRepo, logger)
	inventoryService := services.NewInventoryService(inventoryRepo, logger)
	contactService := services.NewContactService(contactRepo, logger)
	orderService := services.NewOrderService(
		txManager, orderRepo, inventoryRepo, productRepo, userRepo,
		partnerRepo, settingsRepo, deliverability, promoService,
		orderProducer, snsClient, cfg.OrderSNSTopicARN, logger,
	)

	routes.Register(r, &routes.Controllers{
		Order:          controllers.NewOrderController(orderService),
		Inventory:      controllers.NewInventoryController(inventoryService),
		Promo:          controllers.NewPromoController(promoService),
		Serviceability: controllers.NewServiceabilityController(deliverability),
		Contact:        controllers.NewContactController(contactService),
	}, rdb, logger)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "paniwalaa-backend"})
	})

	// --- HTTP server ---
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("Paniwalaa backend started", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Initiating graceful shutdown...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
	if err := rdb.Close(); err != nil {
		logger.Error("Redis close error", zap.Error(err))
	}
	if err := database.Close(); err != nil {
		logger.Error("Database close error", zap.Error(err))
	}

	logger.Info("Paniwalaa backend stopped gracefully")
}
