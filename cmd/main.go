package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bifroggame1-create/FastPayAI/internal/cache"
	"github.com/bifroggame1-create/FastPayAI/internal/config"
	"github.com/bifroggame1-create/FastPayAI/internal/cryptopay"
	h "github.com/bifroggame1-create/FastPayAI/internal/http"
	"github.com/bifroggame1-create/FastPayAI/internal/repository"
	"github.com/bifroggame1-create/FastPayAI/internal/service"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()

	// Set up MongoDB connection
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	if err := repository.EnsureIndexes(ctx, mongoDB); err != nil {
		logger.Fatal().Err(err).Msg("failed to create indexes")
	}
	logger.Info().Str("uri", cfg.MongoURI).Msg("connected to MongoDB")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	logger.Info().Str("addr", cfg.RedisAddr).Msg("connected to Redis")

	// A missing token is a configuration error: refuse to start rather than
	// fail every checkout at runtime.
	provider, err := cryptopay.NewClient(cfg.CryptoBotToken, cfg.CryptoBotAPIURL, cfg.ProviderTimeout, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create payment provider client")
	}

	productRepo := repository.NewMongoProductRepository(mongoDB)
	userRepo := repository.NewMongoUserRepository(mongoDB)
	orderRepo := repository.NewMongoOrderRepository(mongoDB)
	promoRepo := repository.NewMongoPromoRepository(mongoDB)

	catalogService := service.NewCatalogService(productRepo, cache.NewRedisCache(redisClient), logger)
	userService := service.NewUserService(userRepo, logger)
	orderService := service.NewOrderService(orderRepo, userRepo, promoRepo, logger)
	promoService := service.NewPromoService(promoRepo)
	paymentService := service.NewPaymentService(provider, cfg.FrontendURL+"/payment/success", logger)

	router := h.NewRouter(
		h.RouterConfig{FrontendURL: cfg.FrontendURL, RequestTimeout: cfg.RequestTimeout},
		h.NewProductHandler(catalogService, cfg.RequestTimeout),
		h.NewUserHandler(userService, cfg.RequestTimeout),
		h.NewOrderHandler(orderService, cfg.RequestTimeout),
		h.NewPromoHandler(promoService, cfg.RequestTimeout),
		h.NewPaymentHandler(paymentService, cfg.RequestTimeout),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Msg("storefront API starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}
	if err := mongoDB.Client().Disconnect(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("mongo disconnect failed")
	}

	logger.Info().Msg("server exited")
}
