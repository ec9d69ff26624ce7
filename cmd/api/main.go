package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/router"
	"github.com/pageza/recipeshare/backend/internal/server"
	"github.com/pageza/recipeshare/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	setupLogging(cfg)

	db, err := database.New(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer database.Close(db)

	if cfg.Environment != config.Production {
		if err := database.AutoMigrate(db); err != nil {
			log.WithError(err).Fatal("failed to migrate database")
		}
	}

	ctx := context.Background()

	var tokens service.TokenStore
	if cfg.RedisEnabled() {
		client, err := database.NewRedisClient(ctx, cfg)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, keeping revoked tokens in memory")
		} else {
			defer client.Close()
			tokens = service.NewRedisTokenStore(client)
		}
	}

	var storage service.ObjectPresigner
	if cfg.S3Enabled() {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			log.WithError(err).Warn("failed to initialize S3, picture uploads disabled")
		} else {
			storage = s3cfg
		}
	}

	services := api.NewServices(db, cfg.JWTSecret, tokens, storage)
	srv := server.New(cfg, router.SetupRouter(cfg, services))

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.WithError(err).Fatal("server error")
		}
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("received signal")
	}

	if err := srv.Shutdown(context.Background()); err != nil {
		log.WithError(err).Fatal("server shutdown error")
	}
	log.Info("server stopped")
}

func setupLogging(cfg *config.Config) {
	if cfg.Environment == config.Production {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
