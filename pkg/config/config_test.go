package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	os.Clearenv()
	os.Setenv("OPENAI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 30*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 30s", cfg.Server.ReadTimeout)
	}
	if cfg.Database.DBName != "answerhub" {
		t.Errorf("Database.DBName = %s, want answerhub", cfg.Database.DBName)
	}
	if cfg.OpenAI.EmbeddingModel != "text-embedding-3-large" {
		t.Errorf("OpenAI.EmbeddingModel = %s, want text-embedding-3-large", cfg.OpenAI.EmbeddingModel)
	}
	if cfg.OpenAI.ChatModel != "gpt-4o-mini" {
		t.Errorf("OpenAI.ChatModel = %s, want gpt-4o-mini", cfg.OpenAI.ChatModel)
	}
	if cfg.OpenAI.MaxTokens != 400 {
		t.Errorf("OpenAI.MaxTokens = %d, want 400", cfg.OpenAI.MaxTokens)
	}
	if cfg.RAG.SimilarityThreshold != 0.75 {
		t.Errorf("RAG.SimilarityThreshold = %f, want 0.75", cfg.RAG.SimilarityThreshold)
	}
	if cfg.RAG.TopK != 3 {
		t.Errorf("RAG.TopK = %d, want 3", cfg.RAG.TopK)
	}
	if cfg.Ingest.ChunkSize != 1000 {
		t.Errorf("Ingest.ChunkSize = %d, want 1000", cfg.Ingest.ChunkSize)
	}
	if cfg.Ingest.ChunkOverlap != 200 {
		t.Errorf("Ingest.ChunkOverlap = %d, want 200", cfg.Ingest.ChunkOverlap)
	}
	if cfg.Logger.Level != "info" {
		t.Errorf("Logger.Level = %s, want info", cfg.Logger.Level)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	os.Clearenv()
	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small")
	os.Setenv("OPENAI_CHAT_MODEL", "gpt-4o")
	os.Setenv("OPENAI_MAX_TOKENS", "800")
	os.Setenv("RAG_SIMILARITY_THRESHOLD", "0.6")
	os.Setenv("RAG_TOP_K", "5")
	os.Setenv("INGEST_CHUNK_SIZE", "500")
	os.Setenv("INGEST_CHUNK_OVERLAP", "50")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
	}
	if cfg.OpenAI.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("OpenAI.EmbeddingModel = %s, want text-embedding-3-small", cfg.OpenAI.EmbeddingModel)
	}
	if cfg.OpenAI.MaxTokens != 800 {
		t.Errorf("OpenAI.MaxTokens = %d, want 800", cfg.OpenAI.MaxTokens)
	}
	if cfg.RAG.SimilarityThreshold != 0.6 {
		t.Errorf("RAG.SimilarityThreshold = %f, want 0.6", cfg.RAG.SimilarityThreshold)
	}
	if cfg.RAG.TopK != 5 {
		t.Errorf("RAG.TopK = %d, want 5", cfg.RAG.TopK)
	}
	if cfg.Ingest.ChunkSize != 500 {
		t.Errorf("Ingest.ChunkSize = %d, want 500", cfg.Ingest.ChunkSize)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	os.Clearenv()

	if _, err := Load(); err == nil {
		t.Error("Load() succeeded without OPENAI_API_KEY, want error")
	}
}

func TestLoad_InvalidThreshold(t *testing.T) {
	os.Clearenv()
	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("RAG_SIMILARITY_THRESHOLD", "not-a-number")

	if _, err := Load(); err == nil {
		t.Error("Load() succeeded with invalid threshold, want error")
	}
}

func TestLoad_OverlapLargerThanChunk(t *testing.T) {
	os.Clearenv()
	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("INGEST_CHUNK_SIZE", "100")
	os.Setenv("INGEST_CHUNK_OVERLAP", "100")

	if _, err := Load(); err == nil {
		t.Error("Load() succeeded with overlap >= chunk size, want error")
	}
}
