package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/chat-relay-be/internal/api"
	"github.com/isdelr/chat-relay-be/internal/auth"
	"github.com/isdelr/chat-relay-be/internal/config"
	"github.com/isdelr/chat-relay-be/internal/database"
	"github.com/isdelr/chat-relay-be/internal/logger"
	"github.com/isdelr/chat-relay-be/internal/monitoring"
	"github.com/isdelr/chat-relay-be/internal/services"
	"github.com/isdelr/chat-relay-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services; the token signing secret lives on the service
	// instance, injected here from config.
	tokenService := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.TokenTTL)
	userService := services.NewUserService(db)
	messageService := services.NewMessageService(db)
	relayService := services.NewRelayService(messageService, hub)

	// Set up and run the background retention pruner
	retention := time.Duration(cfg.RetentionDays) * 24 * time.Hour
	pruner, err := monitoring.NewRetentionPruner(messageService, cfg.RetentionCron, retention)
	if err != nil {
		log.Fatal().Err(err).Str("cron", cfg.RetentionCron).Msg("Invalid retention schedule")
	}
	go pruner.Run()

	// Set up and run the background presence updater
	presence := monitoring.NewPresenceUpdater(hub)
	go presence.Run()

	// Set up router
	router := api.NewRouter(hub, tokenService, userService, messageService, relayService, cfg.AllowedOrigin)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	pruner.Stop()
	presence.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
