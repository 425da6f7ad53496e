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
	"github.com/redis/go-redis/v9"

	"github.com/shaONme/padel-admin/backend"
	"github.com/shaONme/padel-admin/config"
	"github.com/shaONme/padel-admin/handlers"
	"github.com/shaONme/padel-admin/routes"
	"github.com/shaONme/padel-admin/services"
)

const draftTTL = 24 * time.Hour // Сколько Redis держит незавершённый черновик

func main() {
	// Настройка логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("backend", cfg.BackendAPIURL),
	)

	// Клиент бэкенда
	apiClient := backend.NewClient(cfg.BackendAPIURL, cfg.ClientTimeout, nil)
	logger.Info("backend client initialized")

	// Хранилище черновиков: Redis, если задан, иначе память процесса
	var draftStore services.DraftStore
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid REDIS_URL", slog.Any("error", err))
			os.Exit(1)
		}
		redisClient := redis.NewClient(opts)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("failed to close redis connection", slog.Any("error", err))
			}
		}()
		draftStore = services.NewRedisDraftStore(redisClient, draftTTL)
		logger.Info("redis draft store initialized")
	} else {
		draftStore = services.NewMemoryDraftStore()
		logger.Info("in-memory draft store initialized")
	}

	// Инициализация сервисов
	statusService := services.NewStatusService(apiClient)
	ratingService := services.NewRatingService(apiClient)
	playerService := services.NewPlayerService(apiClient)
	chatService := services.NewChatService(apiClient)
	matchService := services.NewMatchService(apiClient)
	draftService := services.NewDraftService(apiClient, draftStore, cfg.MaxParticipants, logger)
	logger.Info("services initialized")

	// Инициализация обработчиков HTTP
	statusHandler := handlers.NewStatusHandler(statusService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	playerHandler := handlers.NewPlayerHandler(playerService)
	chatHandler := handlers.NewChatHandler(chatService)
	draftHandler := handlers.NewDraftHandler(draftService)
	matchHandler := handlers.NewMatchHandler(matchService)
	logger.Info("HTTP handlers initialized")

	// Настройка маршрутизатора
	router := chi.NewRouter()
	routes.SetupRoutes(
		router,
		cfg.CORSAllowedOrigins,
		statusHandler,
		ratingHandler,
		playerHandler,
		chatHandler,
		draftHandler,
		matchHandler,
	)
	logger.Info("routes configured")

	// Настройка и запуск HTTP-сервера
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	// Ожидание сигнала завершения
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
