package service

import (
	"context"
	"fmt"

	"answerhub/pkg/config"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIService wraps the OpenAI API for the two outbound calls the
// resolver needs: text embedding and chat completion. The embedding model
// must match whatever populated the knowledge base or similarity scores
// become meaningless.
type OpenAIService struct {
	client *openai.Client
	config *config.OpenAIConfig
	logger *zap.Logger
}

func NewOpenAIService(cfg *config.OpenAIConfig, logger *zap.Logger) *OpenAIService {
	return &OpenAIService{
		client: openai.NewClient(cfg.APIKey),
		config: cfg,
		logger: logger,
	}
}

// Embed converts text into a dense vector using the configured model.
func (s *OpenAIService) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: openai.EmbeddingModel(s.config.EmbeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}

	s.logger.Debug("Embedding created",
		zap.String("model", s.config.EmbeddingModel),
		zap.Int("dimensions", len(resp.Data[0].Embedding)),
	)
	return resp.Data[0].Embedding, nil
}

// Complete runs a single-turn chat completion with a system instruction.
func (s *OpenAIService) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.config.ChatModel,
		MaxTokens: s.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}
