package service

import (
	"context"
	"fmt"
	"strings"

	"answerhub/internal/models"
	"answerhub/pkg/config"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// SourceDocument is one entry of a knowledge-base input file.
type SourceDocument struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Source string `json:"source"`
}

// IngestService performs the one-shot bulk load: split documents into
// chunks, embed each chunk with the same model the resolver queries with,
// and insert everything into the store.
type IngestService struct {
	llm      LLMProvider
	store    KnowledgeStore
	splitter *TextSplitter
	logger   *zap.Logger
}

func NewIngestService(llm LLMProvider, store KnowledgeStore, cfg *config.IngestConfig, logger *zap.Logger) *IngestService {
	return &IngestService{
		llm:      llm,
		store:    store,
		splitter: NewTextSplitter(cfg.ChunkSize, cfg.ChunkOverlap),
		logger:   logger,
	}
}

// LoadKnowledgeBase ingests the documents and returns how many chunks were
// inserted. The first failure aborts the load; there is no retry and no
// rollback of chunks already written.
func (s *IngestService) LoadKnowledgeBase(ctx context.Context, docs []SourceDocument) (int, error) {
	inserted := 0
	for _, doc := range docs {
		if strings.TrimSpace(doc.Text) == "" {
			s.logger.Warn("Skipping document with empty text", zap.String("title", doc.Title))
			continue
		}

		content := doc.Text
		if doc.Title != "" {
			content = doc.Title + ": " + doc.Text
		}

		for _, chunkText := range s.splitter.Split(content) {
			embedding, err := s.llm.Embed(ctx, chunkText)
			if err != nil {
				return inserted, fmt.Errorf("failed to embed chunk of %q: %w", doc.Title, err)
			}

			chunk := &models.KnowledgeChunk{
				Title:     doc.Title,
				Text:      chunkText,
				Source:    doc.Source,
				Embedding: pgvector.NewVector(embedding),
			}
			if err := s.store.Insert(ctx, chunk); err != nil {
				return inserted, fmt.Errorf("failed to insert chunk of %q: %w", doc.Title, err)
			}
			inserted++
		}
	}

	s.logger.Info("Knowledge base loaded",
		zap.Int("documents", len(docs)),
		zap.Int("chunks", inserted),
	)
	return inserted, nil
}
