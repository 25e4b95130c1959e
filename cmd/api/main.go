package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"birthday-song-service/internal/client"
	"birthday-song-service/internal/config"
	"birthday-song-service/internal/generator"
	"birthday-song-service/internal/logger"
	"birthday-song-service/internal/ratelimit"
	"birthday-song-service/internal/repository"
	"birthday-song-service/internal/server"
	"birthday-song-service/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)

	db, err := client.InitDBClient(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("init database")
	}

	checkoutClient, err := client.NewMockCheckoutClient(cfg.FrontendURL, cfg.Checkout.SessionTTL, cfg.Checkout.NodeID)
	if err != nil {
		log.WithError(err).Fatal("init checkout client")
	}
	emailClient := client.NewEmailClient(&cfg.SendGrid, log)

	orderRepo := repository.NewOrderRepository(db)
	lyricsRepo := repository.NewLyricsRepository(db)
	songRepo := repository.NewSongRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)
	shareEventRepo := repository.NewShareEventRepository(db)

	media := generator.NewMedia(cfg.Media.BaseURL)

	services := server.Services{
		Orders: service.NewOrderService(orderRepo),
		Generation: service.NewGenerationService(
			db,
			orderRepo,
			lyricsRepo,
			songRepo,
			videoRepo,
			media,
			cfg.Media.VideoRenderDelay,
			time.Now,
		),
		Checkout: service.NewCheckoutService(
			db,
			checkoutClient,
			emailClient,
			cfg.FrontendURL,
			orderRepo,
			paymentRepo,
			webhookEventRepo,
			log,
		),
		Share:  service.NewShareService(orderRepo, songRepo, videoRepo, shareEventRepo, log),
		Social: service.NewSocialService(generator.NewSocialScanner(cfg.Social.FetchEnabled, cfg.Social.FetchTimeout)),
		Admin:  service.NewAdminService(orderRepo, paymentRepo),
	}

	// background sweeps live as long as the process
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	limitStore := ratelimit.NewStore()
	go limitStore.Run(bgCtx, cfg.RateLimit.SweepInterval)
	go client.RunExpiry(bgCtx, checkoutClient, cfg.Checkout.SweepInterval)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(cfg, log, limitStore, services)

	log.WithField("addr", serverAddr).Info("starting HTTP server")
	go func() {
		if err := srv.Start(serverAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Info("signal received, starting graceful shutdown")

	stopBackground()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown error")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info("shutdown complete")
}
