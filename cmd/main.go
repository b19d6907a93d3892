package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/swiftride/backend/internal/auth"
	"github.com/swiftride/backend/internal/config"
	"github.com/swiftride/backend/internal/crypto"
	"github.com/swiftride/backend/internal/events"
	"github.com/swiftride/backend/internal/handler"
	"github.com/swiftride/backend/internal/middleware"
	"github.com/swiftride/backend/internal/repository"
	"github.com/swiftride/backend/internal/router"
	"github.com/swiftride/backend/internal/usecase"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Connect to MongoDB
	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		if err = mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	db := mongoClient.Database(cfg.MongoDB)

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if _, err = redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Connect to NATS
	natsConn, err := events.NewConnection(cfg.NatsURL)
	if err != nil {
		logger.Fatal("Failed to connect to NATS", zap.Error(err))
	}
	defer natsConn.Close()

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	encryptor, err := crypto.NewEncryptor(cfg.EncryptionKey)
	if err != nil {
		logger.Fatal("Failed to initialize encryptor", zap.Error(err))
	}
	statusPublisher, err := events.NewNATSPublisher(natsConn)
	if err != nil {
		logger.Fatal("Failed to initialize NATS publisher", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db, logger)
	driverRepo := repository.NewDriverRepository(db, logger)
	profileCache := repository.NewProfileCache(redisClient)

	authUsecase := usecase.NewAuthUsecase(userRepo, tokenManager, logger)
	profileUsecase := usecase.NewProfileUsecase(cfg.AuthorName)
	driverUsecase := usecase.NewDriverUsecase(driverRepo, userRepo, profileCache, statusPublisher, encryptor, logger)

	authHandler := handler.NewAuthHandler(authUsecase, logger)
	profileHandler := handler.NewProfileHandler(profileUsecase, logger)
	driverHandler := handler.NewDriverHandler(driverUsecase, logger)
	authenticator := middleware.NewAuthenticator(tokenManager, userRepo, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(logger))
	router.Setup(r, authenticator, authHandler, profileHandler, driverHandler)

	// Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting SwiftRide backend", zap.String("address", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("Failed to start HTTP server", zap.Error(err))
	}
}
