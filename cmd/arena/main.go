package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/arena-booking/internal/application"
	"github.com/example/arena-booking/internal/config"
	httptransport "github.com/example/arena-booking/internal/http"
	"github.com/example/arena-booking/internal/persistence/sqlite"
	"github.com/example/arena-booking/internal/seed"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("failed to close database", "error", cerr)
		}
	}()

	if err := db.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now

	sessionRepo := sqlite.NewSessionRepository(db)
	resourceRepo := sqlite.NewResourceRepository(db)
	gameRepo := sqlite.NewGameRepository(db)
	userRepo := sqlite.NewUserRepository(db)

	if cfg.SeedDefaults {
		seeder := seed.New(resourceRepo, resourceRepo, gameRepo, userRepo, idGenerator, now, logger)
		err := seeder.Run(ctx, seed.Config{
			LocationName:  cfg.DefaultLocation,
			ResourceName:  cfg.DefaultResource,
			OwnerEmail:    cfg.OwnerEmail,
			OwnerPassword: cfg.OwnerPassword,
		})
		if err != nil {
			logger.Error("failed to seed defaults", "error", err)
			os.Exit(1)
		}
	}

	sessionService := application.NewSessionServiceWithLogger(sessionRepo, resourceRepo, gameRepo, idGenerator, now, logger)
	calendarService := application.NewCalendarServiceWithLogger(sessionRepo, logger)
	gameService := application.NewGameServiceWithLogger(gameRepo, idGenerator, now, logger)
	resourceService := application.NewResourceServiceWithLogger(resourceRepo, logger)
	authService := application.NewAuthServiceWithLogger(userRepo, nil, []byte(cfg.JWTSecret), cfg.TokenTTL, now, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:      httptransport.NewAuthHandler(authService, logger),
		Sessions:  httptransport.NewSessionHandler(sessionService, logger),
		Calendar:  httptransport.NewCalendarHandler(calendarService, logger),
		Games:     httptransport.NewGameHandler(gameService, logger),
		Resources: httptransport.NewResourceHandler(resourceService, logger),
		Validator: authService,
		Health:    db,
		Logger:    logger,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("arena booking API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
