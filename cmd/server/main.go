// backend/cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/valora-earth/backend/internal/analysis"
	"github.com/valora-earth/backend/internal/api"
	"github.com/valora-earth/backend/internal/api/handlers"
	"github.com/valora-earth/backend/internal/config"
	"github.com/valora-earth/backend/internal/database"
	"github.com/valora-earth/backend/internal/health"
	"github.com/valora-earth/backend/internal/openai"
	"github.com/valora-earth/backend/internal/repository"
	"github.com/valora-earth/backend/internal/services"
	"github.com/valora-earth/backend/internal/session"
	"github.com/valora-earth/backend/pkg/utils"
)

const sessionTTL = time.Hour

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		// .env file is optional in production
	}

	logger := utils.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := cfg.ValidateOpenAI(); err != nil {
		logger.WithError(err).Fatal("Invalid OpenAI configuration")
	}

	dbConfig := &database.Config{
		DatabaseURL: cfg.Database.URL,
		RedisURL:    cfg.Redis.URL,
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}

	dbManager, err := database.NewManager(dbConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database connections")
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	repoManager := repository.NewRepositoryManager(dbManager.DB)

	providerClient := openai.NewClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, logger)
	analysisService := analysis.NewService(providerClient, cfg.OpenAI.Model, logger)
	estimateService := services.NewEstimateService(analysisService, repoManager, logger)

	sessionStore := session.NewRedisStore(dbManager.Redis, sessionTTL, logger)

	healthChecker := health.NewChecker(dbManager, cfg.OpenAI.BaseURL, logger)

	webHandler := handlers.NewWebHandler(sessionStore, repoManager, logger)
	generateHandler := handlers.NewGenerateHandler(estimateService, sessionStore, logger)
	healthHandler := handlers.NewHealthHandler(healthChecker, logger)

	router := api.SetupRouter(api.Config{
		Debug:     cfg.Server.Debug,
		RateLimit: 30,
	}, webHandler, generateHandler, healthHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Forced server shutdown")
	}

	logger.Info("Server exited")
}
