package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/collabhub/marketplace-api/internal/api"
	"github.com/collabhub/marketplace-api/internal/core/ports"
	"github.com/collabhub/marketplace-api/internal/core/service"
	"github.com/collabhub/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/collabhub/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/collabhub/marketplace-api/internal/infrastructure/db/redis"
	"github.com/collabhub/marketplace-api/internal/infrastructure/queue"
	"github.com/collabhub/marketplace-api/internal/playground"
	"github.com/collabhub/marketplace-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx := context.Background()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	// --- Persistence ---
	userRepo := mongodb.NewUserRepository(db)
	campaignRepo := mongodb.NewCampaignRepository(db)
	offerRepo := mongodb.NewOfferRepository(db)
	chatRepo := mongodb.NewChatRepository(db)
	vault := redisdb.NewSessionVault(rdb)
	otpStore := redisdb.NewOTPStore(rdb)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}
	if err := chatRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("chat index creation failed")
	}

	// --- Services ---
	var users ports.UserRepository = userRepo
	var gateway ports.IdentityGateway
	if cfg.PlaygroundGateway {
		log.Warn().Msg("playground identity gateway active; codes are not verified against a provider")
		pg := playground.NewIdentity(cfg.JWTSecret)
		gateway = pg
		// The playground keeps accounts in memory; session writes must
		// target the same store VerifyOTP reads from.
		users = pg
	}

	sessions := service.NewSessionService(vault, users, log)
	if gateway == nil {
		gateway = service.NewIdentityService(users, otpStore, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour, log)
	}

	onboarding := service.NewOnboardingFlow(sessions)
	campaigns := service.NewCampaignService(campaignRepo, log)
	chats := service.NewChatService(chatRepo, log)
	offers := service.NewOfferService(offerRepo, campaignRepo, chats, log)

	// --- Message dispatcher ---
	dispatchCtx, stopDispatch := context.WithCancel(ctx)
	defer stopDispatch()
	dispatcher := queue.NewDispatcher(cfg.ChatWorkers, chats, log)
	dispatcher.Start(dispatchCtx)

	e := api.NewRouter(api.Deps{
		Mongo:      db,
		Redis:      rdb,
		Users:      users,
		Gateway:    gateway,
		Sessions:   sessions,
		Onboarding: onboarding,
		Campaigns:  campaigns,
		Offers:     offers,
		Chats:      chats,
		Dispatcher: dispatcher,
		JWTSecret:  cfg.JWTSecret,
		Logger:     log,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting marketplace server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("shutting down server")
	case err := <-serverErr:
		log.Fatal().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	stopDispatch()
	log.Info().Msg("server stopped gracefully")
}
