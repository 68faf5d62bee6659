package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"answerhub/internal/api"
	"answerhub/internal/api/handlers"
	"answerhub/internal/repository"
	"answerhub/internal/service"
	"answerhub/pkg/config"
	"answerhub/pkg/logger"
	"answerhub/pkg/postgres"

	"go.uber.org/zap"
)

// @title AnswerHub API
// @version 1.0
// @description Self-reinforcing RAG answer service

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting AnswerHub service")

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)
	openaiService := service.NewOpenAIService(&cfg.OpenAI, appLogger)
	answerService := service.NewAnswerService(openaiService, knowledgeRepo, &cfg.RAG, appLogger)

	answerHandler := handlers.NewAnswerHandler(answerService, appLogger)

	app := api.SetupRouter(answerHandler)

	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
