package models

import "github.com/google/uuid"

// TermChunk is one embedded passage from the reference terms corpus.
// Rows are partitioned by canonical category; the embedding column holds a
// 768-dimension vector.
type TermChunk struct {
	ID             uuid.UUID `json:"id"`
	Category       Category  `json:"category"`
	Text           string    `json:"text"`
	SourceDocument string    `json:"source_document"`
	ChunkIndex     int       `json:"chunk_index"`
	Distance       float64   `json:"distance,omitempty"` // Vector similarity distance
}
