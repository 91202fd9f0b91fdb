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

	"github.com/go-chi/chi/v5"
	"github.com/kidstats/kidstats-server/config"
	"github.com/kidstats/kidstats-server/db"
	"github.com/kidstats/kidstats-server/handlers"
	"github.com/kidstats/kidstats-server/live"
	"github.com/kidstats/kidstats-server/repositories"
	api "github.com/kidstats/kidstats-server/routes"
	"github.com/kidstats/kidstats-server/services"
	_ "github.com/lib/pq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Websocket hub for live game rooms
	wsHub := live.NewHub()
	go wsHub.Run()
	logger.Info("WebSocket hub started")

	// Repositories
	childRepo := repositories.NewPostgresChildRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	statEventRepo := repositories.NewPostgresStatEventRepository(dbConn)
	logger.Info("repositories initialized")

	// Services
	childService := services.NewChildService(childRepo)
	teamService := services.NewTeamService(teamRepo)
	playerService := services.NewPlayerService(playerRepo, childRepo, teamRepo)
	gameService := services.NewGameService(gameRepo, teamRepo, childRepo, playerRepo, statEventRepo)
	liveGameService := services.NewLiveGameService(gameRepo, playerRepo, statEventRepo, gameService, wsHub)
	careerService := services.NewCareerService(childRepo, playerRepo, gameRepo, teamRepo, statEventRepo)
	logger.Info("services initialized")

	// HTTP handlers
	childHandler := handlers.NewChildHandler(childService, playerService, careerService)
	teamHandler := handlers.NewTeamHandler(teamService, playerService, gameService)
	playerHandler := handlers.NewPlayerHandler(playerService)
	gameHandler := handlers.NewGameHandler(gameService)
	liveGameHandler := handlers.NewLiveGameHandler(liveGameService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		childHandler,
		teamHandler,
		playerHandler,
		gameHandler,
		liveGameHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		} else {
			logger.Info("server stopped gracefully")
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		} else {
			logger.Info("server shutdown complete")
		}
	}
	logger.Info("application exited")
}
