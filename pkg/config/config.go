package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	OpenAI   OpenAIConfig
	RAG      RAGConfig
	Ingest   IngestConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type OpenAIConfig struct {
	APIKey         string
	EmbeddingModel string
	ChatModel      string
	MaxTokens      int
}

// RAGConfig controls the answer-resolution gate. SimilarityThreshold is
// compared with a strict greater-than against the top search score.
type RAGConfig struct {
	SimilarityThreshold float64
	TopK                int
}

type IngestConfig struct {
	ChunkSize    int
	ChunkOverlap int
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work for Docker/K8s.
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	maxTokens, _ := strconv.Atoi(getEnv("OPENAI_MAX_TOKENS", "400"))
	topK, _ := strconv.Atoi(getEnv("RAG_TOP_K", "3"))
	chunkSize, _ := strconv.Atoi(getEnv("INGEST_CHUNK_SIZE", "1000"))
	chunkOverlap, _ := strconv.Atoi(getEnv("INGEST_CHUNK_OVERLAP", "200"))

	threshold := 0.75
	if raw := os.Getenv("RAG_SIMILARITY_THRESHOLD"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RAG_SIMILARITY_THRESHOLD %q: %w", raw, err)
		}
		threshold = parsed
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "answerhub"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			EmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-large"),
			ChatModel:      getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			MaxTokens:      maxTokens,
		},
		RAG: RAGConfig{
			SimilarityThreshold: threshold,
			TopK:                topK,
		},
		Ingest: IngestConfig{
			ChunkSize:    chunkSize,
			ChunkOverlap: chunkOverlap,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate enforces startup preconditions. Missing credentials are an
// availability problem and must fail before the service starts serving.
func (c *Config) validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.RAG.TopK <= 0 {
		return fmt.Errorf("RAG_TOP_K must be positive, got %d", c.RAG.TopK)
	}
	if c.Ingest.ChunkOverlap >= c.Ingest.ChunkSize {
		return fmt.Errorf("INGEST_CHUNK_OVERLAP (%d) must be smaller than INGEST_CHUNK_SIZE (%d)",
			c.Ingest.ChunkOverlap, c.Ingest.ChunkSize)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
