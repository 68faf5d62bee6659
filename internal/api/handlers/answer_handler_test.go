package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"answerhub/internal/dto"
	"answerhub/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type stubResolver struct {
	result       *service.AnswerResult
	err          error
	calls        int
	lastQuestion string
}

func (s *stubResolver) Answer(_ context.Context, question string) (*service.AnswerResult, error) {
	s.calls++
	s.lastQuestion = question
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newTestApp(resolver *stubResolver) *fiber.App {
	handler := NewAnswerHandler(resolver, zap.NewNop())
	app := fiber.New()
	app.Post("/api/v1/answer", handler.Answer)
	return app
}

func postAnswer(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/answer", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test failed: %v", err)
	}
	return resp
}

func TestAnswer_OK(t *testing.T) {
	resolver := &stubResolver{
		result: &service.AnswerResult{Answer: "A mutex is a lock.", FromKnowledgeBase: true},
	}
	app := newTestApp(resolver)

	resp := postAnswer(t, app, `{"question": "What is a mutex?"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body dto.AnswerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Answer != "A mutex is a lock." {
		t.Errorf("answer = %q, want the resolver's answer", body.Answer)
	}
	if !body.FromKnowledgeBase {
		t.Error("from_knowledge_base = false, want true")
	}
	if resolver.lastQuestion != "What is a mutex?" {
		t.Errorf("resolver got question %q", resolver.lastQuestion)
	}
}

func TestAnswer_EmptyQuestionBadRequest(t *testing.T) {
	resolver := &stubResolver{err: service.ErrEmptyQuestion}
	app := newTestApp(resolver)

	resp := postAnswer(t, app, `{"question": ""}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body dto.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Error == "" {
		t.Error("error message is empty")
	}
}

func TestAnswer_MalformedBodyBadRequest(t *testing.T) {
	resolver := &stubResolver{}
	app := newTestApp(resolver)

	resp := postAnswer(t, app, `{"question": `)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if resolver.calls != 0 {
		t.Errorf("resolver calls = %d, want 0 for malformed body", resolver.calls)
	}
}

func TestAnswer_UpstreamErrorInternalServerError(t *testing.T) {
	resolver := &stubResolver{err: errors.New("failed to embed question: upstream down")}
	app := newTestApp(resolver)

	resp := postAnswer(t, app, `{"question": "anything"}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	var body dto.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(body.Error, "upstream down") {
		t.Errorf("error = %q, want the underlying message attached", body.Error)
	}
}
