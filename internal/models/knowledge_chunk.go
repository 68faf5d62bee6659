package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// SourceGenerated tags chunks written back by the answer service itself.
// Generated chunks are stored and searched exactly like ingested ones, so
// one answer's output becomes a later question's retrieved context.
const SourceGenerated = "AI/Generated"

// KnowledgeChunk is the unit of stored knowledge. Chunks are insert-only:
// the service never updates or deletes a row.
type KnowledgeChunk struct {
	ID        uuid.UUID       `db:"id"`
	Title     string          `db:"title"` // for generated chunks this is the original question
	Text      string          `db:"text"`
	Source    string          `db:"source"`
	Embedding pgvector.Vector `db:"embedding"`
	CreatedAt time.Time       `db:"created_at"`
}

// ScoredChunk is a search hit. Score is a normalized cosine similarity
// (1 - cosine distance), higher is closer.
type ScoredChunk struct {
	KnowledgeChunk
	Score float64
}
