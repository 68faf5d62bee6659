package handlers

import (
	"context"
	"errors"

	"answerhub/internal/dto"
	"answerhub/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AnswerResolver is what the handler needs from the answer service.
type AnswerResolver interface {
	Answer(ctx context.Context, question string) (*service.AnswerResult, error)
}

type AnswerHandler struct {
	resolver AnswerResolver
	logger   *zap.Logger
}

func NewAnswerHandler(resolver AnswerResolver, logger *zap.Logger) *AnswerHandler {
	return &AnswerHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// Answer godoc
// @Summary Answer a question
// @Description Answers from the knowledge base when a similar enough chunk exists, otherwise generates an answer and stores it for future questions
// @Tags answers
// @Accept json
// @Produce json
// @Param request body dto.AnswerRequest true "Question to answer"
// @Success 200 {object} dto.AnswerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/v1/answer [post]
func (h *AnswerHandler) Answer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	result, err := h.resolver.Answer(c.Context(), req.Question)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuestion) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		h.logger.Error("Failed to answer question", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: err.Error(),
		})
	}

	return c.JSON(dto.AnswerResponse{
		Answer:            result.Answer,
		FromKnowledgeBase: result.FromKnowledgeBase,
	})
}
