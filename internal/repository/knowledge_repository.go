package repository

import (
	"context"
	"fmt"
	"time"

	"answerhub/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

const chunksTable = "knowledge_chunks"

type KnowledgeRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewKnowledgeRepository(db *pgxpool.Pool, logger *zap.Logger) *KnowledgeRepository {
	return &KnowledgeRepository{
		db:     db,
		logger: logger,
	}
}

// Insert appends one chunk. The ID and creation time are assigned here if
// the caller left them zero; nothing ever updates a row afterwards.
func (r *KnowledgeRepository) Insert(ctx context.Context, chunk *models.KnowledgeChunk) error {
	if chunk.ID == uuid.Nil {
		chunk.ID = uuid.New()
	}
	if chunk.CreatedAt.IsZero() {
		chunk.CreatedAt = time.Now().UTC()
	}

	query := squirrel.Insert(chunksTable).
		Columns("id", "title", "text", "source", "embedding", "created_at").
		Values(chunk.ID, chunk.Title, chunk.Text, chunk.Source, chunk.Embedding, chunk.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to insert knowledge chunk: %w", err)
	}

	r.logger.Debug("Knowledge chunk inserted",
		zap.String("id", chunk.ID.String()),
		zap.String("source", chunk.Source),
	)
	return nil
}

// SearchSimilar returns the topK nearest chunks by cosine similarity,
// ordered best-first. Score is 1 - cosine distance, so it lives in the
// same normalized range the similarity threshold is defined on.
func (r *KnowledgeRepository) SearchSimilar(ctx context.Context, embedding pgvector.Vector, topK int) ([]models.ScoredChunk, error) {
	query := squirrel.Select("id", "title", "text", "source", "created_at").
		Column(squirrel.Expr("1 - (embedding <=> ?) AS score", embedding)).
		From(chunksTable).
		OrderByClause("embedding <=> ?", embedding).
		Limit(uint64(topK)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build search query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search knowledge chunks: %w", err)
	}
	defer rows.Close()

	var results []models.ScoredChunk
	for rows.Next() {
		var chunk models.ScoredChunk
		if err := rows.Scan(
			&chunk.ID, &chunk.Title, &chunk.Text, &chunk.Source, &chunk.CreatedAt, &chunk.Score,
		); err != nil {
			return nil, fmt.Errorf("failed to scan knowledge chunk: %w", err)
		}
		results = append(results, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read knowledge chunks: %w", err)
	}

	return results, nil
}

// Count returns the number of stored chunks, optionally filtered by source.
func (r *KnowledgeRepository) Count(ctx context.Context, source string) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From(chunksTable).
		PlaceholderFormat(squirrel.Dollar)
	if source != "" {
		query = query.Where(squirrel.Eq{"source": source})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count knowledge chunks: %w", err)
	}
	return count, nil
}
