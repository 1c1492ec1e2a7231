package repository

import (
	"context"
	"fmt"
	"strings"

	"termdraft-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TermChunkRepository handles database operations for reference term chunks
type TermChunkRepository struct {
	db *pgxpool.Pool
}

// NewTermChunkRepository creates a new term chunk repository
func NewTermChunkRepository(db *pgxpool.Pool) *TermChunkRepository {
	return &TermChunkRepository{db: db}
}

// formatVector formats an embedding vector as a string for pgx
func formatVector(embedding []float64) string {
	if len(embedding) == 0 {
		return "[]"
	}
	var parts []string
	for _, v := range embedding {
		parts = append(parts, fmt.Sprintf("%.6f", v))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// CategoryExists reports whether a persisted index exists for the category,
// i.e. whether any chunks were ingested under it
func (r *TermChunkRepository) CategoryExists(ctx context.Context, category models.Category) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM term_chunks WHERE category = $1)`,
		string(category),
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to probe category index: %w", err)
	}
	return exists, nil
}

// SearchByCategory returns the chunks nearest to the query embedding within
// one category's index, ordered by cosine distance.
// embedding: Query embedding vector (768 dimensions)
// limit: Maximum number of chunks to return
func (r *TermChunkRepository) SearchByCategory(
	ctx context.Context,
	embedding []float64,
	category models.Category,
	limit int,
) ([]models.TermChunk, error) {
	if len(embedding) != 768 {
		return nil, fmt.Errorf("embedding must be 768 dimensions, got %d", len(embedding))
	}

	vectorStr := formatVector(embedding)

	query := `
		SELECT
			id,
			category,
			chunk_text,
			source_document,
			chunk_index,
			embedding <=> $1::vector AS distance
		FROM term_chunks
		WHERE category = $2
		ORDER BY
			embedding <=> $1::vector
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, vectorStr, string(category), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query term chunks: %w", err)
	}
	defer rows.Close()

	var chunks []models.TermChunk
	for rows.Next() {
		var chunk models.TermChunk
		err := rows.Scan(
			&chunk.ID,
			&chunk.Category,
			&chunk.Text,
			&chunk.SourceDocument,
			&chunk.ChunkIndex,
			&chunk.Distance,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan term chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating term chunks: %w", err)
	}

	return chunks, nil
}
