package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ranjel272/my-backend-services/internal/config"
	"github.com/Ranjel272/my-backend-services/internal/infra"
	"github.com/Ranjel272/my-backend-services/internal/model"
	"github.com/Ranjel272/my-backend-services/internal/repository"
	"github.com/Ranjel272/my-backend-services/internal/router"
	"github.com/Ranjel272/my-backend-services/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL, &model.User{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	uploads, err := infra.NewUploadStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare upload directory")
	}

	// Bootstrap account so a fresh database can always be logged into.
	authSvc := service.NewAuthService(repository.NewUserRepository(db), cfg)
	if err := authSvc.EnsureDefaultAdmin(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default admin")
	}

	r, err := router.NewAuth(cfg, db, uploads)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.AuthPort),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("auth service listening on :%d", cfg.AuthPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
