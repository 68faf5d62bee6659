package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"answerhub/internal/models"
	"answerhub/pkg/config"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

// ErrEmptyQuestion is returned before any external call when the question
// is missing or blank. Handlers map it to a client error.
var ErrEmptyQuestion = errors.New("question is required")

const (
	contextSystemPrompt  = "You are a technical assistant specialized in software development."
	generateSystemPrompt = "You are a technical assistant specialized in software development. " +
		"Answer clearly and with solid technical grounding."
)

// LLMProvider is the slice of the model API the resolver depends on.
type LLMProvider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// KnowledgeStore is the slice of the repository the resolver depends on.
type KnowledgeStore interface {
	Insert(ctx context.Context, chunk *models.KnowledgeChunk) error
	SearchSimilar(ctx context.Context, embedding pgvector.Vector, topK int) ([]models.ScoredChunk, error)
}

type AnswerResult struct {
	Answer            string
	FromKnowledgeBase bool
}

// AnswerService resolves a question either from stored knowledge or by
// generating a fresh answer and caching it back into the store. It holds
// no state between calls; everything shared lives in the store.
type AnswerService struct {
	llm    LLMProvider
	store  KnowledgeStore
	config *config.RAGConfig
	logger *zap.Logger
}

func NewAnswerService(llm LLMProvider, store KnowledgeStore, cfg *config.RAGConfig, logger *zap.Logger) *AnswerService {
	return &AnswerService{
		llm:    llm,
		store:  store,
		config: cfg,
		logger: logger,
	}
}

// Answer runs the resolution pipeline: embed the question, search the
// store, and branch on the top similarity score. Above the threshold the
// retrieved texts ground the completion and nothing is written; at or
// below it the model answers unassisted and the answer is embedded and
// inserted so the next similar question can hit the store instead.
//
// Any upstream failure aborts the whole operation; there is no retry and
// no partial result.
func (s *AnswerService) Answer(ctx context.Context, question string) (*AnswerResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	questionVec, err := s.llm.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	results, err := s.store.SearchSimilar(ctx, pgvector.NewVector(questionVec), s.config.TopK)
	if err != nil {
		return nil, fmt.Errorf("failed to search knowledge base: %w", err)
	}

	// An empty store is a score of zero, which always misses the gate.
	topScore := 0.0
	if len(results) > 0 {
		topScore = results[0].Score
	}

	// Strict greater-than: a score of exactly the threshold still misses.
	if topScore > s.config.SimilarityThreshold {
		return s.answerFromContext(ctx, question, results, topScore)
	}
	return s.generateAndCache(ctx, question, topScore)
}

func (s *AnswerService) answerFromContext(ctx context.Context, question string, results []models.ScoredChunk, topScore float64) (*AnswerResult, error) {
	texts := make([]string, 0, len(results))
	for _, r := range results {
		texts = append(texts, r.Text)
	}
	contextBlock := strings.Join(texts, "\n")

	userPrompt := fmt.Sprintf(
		"Use the context content to answer the user's question:\n\n%s\n\nQuestion: %s",
		contextBlock, question,
	)

	answer, err := s.llm.Complete(ctx, contextSystemPrompt, userPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate context answer: %w", err)
	}

	s.logger.Info("Answered from knowledge base",
		zap.Float64("top_score", topScore),
		zap.Int("context_chunks", len(results)),
	)

	return &AnswerResult{Answer: answer, FromKnowledgeBase: true}, nil
}

func (s *AnswerService) generateAndCache(ctx context.Context, question string, topScore float64) (*AnswerResult, error) {
	answer, err := s.llm.Complete(ctx, generateSystemPrompt, question)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}

	answerVec, err := s.llm.Embed(ctx, answer)
	if err != nil {
		return nil, fmt.Errorf("failed to embed generated answer: %w", err)
	}

	chunk := &models.KnowledgeChunk{
		Title:     question,
		Text:      answer,
		Source:    models.SourceGenerated,
		Embedding: pgvector.NewVector(answerVec),
	}
	if err := s.store.Insert(ctx, chunk); err != nil {
		return nil, fmt.Errorf("failed to cache generated answer: %w", err)
	}

	s.logger.Info("Generated and cached new answer",
		zap.Float64("top_score", topScore),
		zap.String("chunk_id", chunk.ID.String()),
	)

	return &AnswerResult{Answer: answer, FromKnowledgeBase: false}, nil
}
