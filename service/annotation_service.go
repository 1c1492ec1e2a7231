package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"termdraft-backend/storage"

	"github.com/google/uuid"
)

// AnnotationService turns generated terms text into an annotated HTML
// visualization: segment into clauses, extract entities per clause, resolve
// spans, render, and archive the artifact.
type AnnotationService struct {
	extractor *EntityExtractor
	artifacts storage.Storage
}

// AnnotationServiceOption is a functional option for AnnotationService
type AnnotationServiceOption func(*AnnotationService)

// AnnotationWithGenerator sets the generator backing entity extraction
func AnnotationWithGenerator(gen Generator) AnnotationServiceOption {
	return func(s *AnnotationService) {
		s.extractor = NewEntityExtractor(gen)
	}
}

// AnnotationWithArtifactStorage sets the archive for rendered artifacts
func AnnotationWithArtifactStorage(st storage.Storage) AnnotationServiceOption {
	return func(s *AnnotationService) {
		s.artifacts = st
	}
}

// NewAnnotationService creates a new annotation service
func NewAnnotationService(opts ...AnnotationServiceOption) *AnnotationService {
	s := &AnnotationService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// VisualizeResult carries the rendered artifact and its archive id
type VisualizeResult struct {
	HTML       string `json:"html"`
	ArtifactID string `json:"artifactId"`
}

// Visualize runs the annotation pipeline over raw terms text. Per-clause
// extraction failures degrade to unannotated clauses and never fail the
// request; zero extractable clauses does.
func (s *AnnotationService) Visualize(ctx context.Context, text string) (*VisualizeResult, error) {
	if s.extractor == nil {
		return nil, fmt.Errorf("annotation service not fully configured")
	}

	clauses := SegmentClauses(text)
	if len(clauses) == 0 {
		return nil, ErrNoClauses
	}

	results := s.extractor.ExtractAll(ctx, clauses)

	degraded := 0
	for _, r := range results {
		if r.Degraded {
			degraded++
		}
	}
	if degraded > 0 {
		log.Printf("Warning: %d of %d clauses degraded during extraction", degraded, len(results))
	}

	html := RenderAnnotatedDocument(clauses, results)

	artifactID := uuid.New()
	s.archive(ctx, artifactID, html)

	return &VisualizeResult{
		HTML:       html,
		ArtifactID: artifactID.String(),
	}, nil
}

// archive stores the rendered artifact for later retrieval. Best effort:
// archive failure never fails the visualization request.
func (s *AnnotationService) archive(ctx context.Context, artifactID uuid.UUID, html string) {
	if s.artifacts == nil {
		return
	}
	path, err := s.artifacts.Save(ctx, artifactID, artifactName, strings.NewReader(html))
	if err != nil {
		log.Printf("Warning: failed to archive visualization %s: %v", artifactID, err)
		return
	}
	log.Printf("Archived visualization %s at %s", artifactID, path)
}

const artifactName = "visualization.html"

// FetchArtifact loads a previously archived visualization by its id
func (s *AnnotationService) FetchArtifact(ctx context.Context, artifactID string) (string, error) {
	if s.artifacts == nil {
		return "", fmt.Errorf("artifact storage not configured")
	}
	id, err := uuid.Parse(artifactID)
	if err != nil {
		return "", fmt.Errorf("invalid artifact id: %w", err)
	}

	rc, err := s.artifacts.Load(ctx, storage.ArtifactPath(id, artifactName))
	if err != nil {
		return "", err
	}
	defer rc.Close()

	html, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("failed to read artifact: %w", err)
	}
	return string(html), nil
}
