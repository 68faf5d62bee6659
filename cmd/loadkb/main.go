// Command loadkb is the one-shot knowledge-base loader. It reads a JSON
// file of {title, text, source} documents, splits them into chunks, embeds
// each chunk, and inserts everything into the store the answer service
// searches.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"answerhub/internal/repository"
	"answerhub/internal/service"
	"answerhub/pkg/config"
	"answerhub/pkg/logger"
	"answerhub/pkg/postgres"

	"go.uber.org/zap"
)

func main() {
	filePath := flag.String("file", filepath.Join("data", "knowledge_base.json"), "path to the knowledge base JSON file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	docs, err := readDocuments(*filePath)
	if err != nil {
		appLogger.Fatal("Failed to read knowledge base file", zap.Error(err))
	}

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	knowledgeRepo := repository.NewKnowledgeRepository(db, appLogger)
	openaiService := service.NewOpenAIService(&cfg.OpenAI, appLogger)
	ingestService := service.NewIngestService(openaiService, knowledgeRepo, &cfg.Ingest, appLogger)

	appLogger.Info("Loading knowledge base",
		zap.String("file", *filePath),
		zap.Int("documents", len(docs)),
	)

	inserted, err := ingestService.LoadKnowledgeBase(ctx, docs)
	if err != nil {
		appLogger.Fatal("Failed to load knowledge base",
			zap.Int("inserted_before_failure", inserted),
			zap.Error(err),
		)
	}

	appLogger.Info("Knowledge base loaded successfully", zap.Int("chunks_inserted", inserted))
}

func readDocuments(path string) ([]service.SourceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var docs []service.SourceDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
