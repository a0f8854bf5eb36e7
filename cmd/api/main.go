package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/Tahsin0604/harmony-academy-server/internal/auth"
	"github.com/Tahsin0604/harmony-academy-server/internal/config"
	"github.com/Tahsin0604/harmony-academy-server/internal/database"
	"github.com/Tahsin0604/harmony-academy-server/internal/payment"
	"github.com/Tahsin0604/harmony-academy-server/internal/repository"
	"github.com/Tahsin0604/harmony-academy-server/internal/routes"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration error")
	}

	client, err := database.ConnectMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	indexCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()
	if err := repository.EnsureIndexes(indexCtx, client.Database(cfg.DatabaseName)); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	tokens := auth.NewTokenService(cfg.JWTSecret)
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey)

	router := routes.SetupRouter(client, cfg.DatabaseName, tokens, gateway, log)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      c.Handler(router),
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
	log.Info().Msg("server stopped")
}
