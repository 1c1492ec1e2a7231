package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"termdraft-backend/models"
)

const (
	// pointsCost is the fixed debit for one generation request
	pointsCost = 5000

	// retrievalTopK is how many context chunks feed the prompt
	retrievalTopK = 5

	insufficientPointsMessage = "포인트가 부족합니다."
)

// ChunkSearcher is the read path into the persisted term indices
type ChunkSearcher interface {
	CategoryExists(ctx context.Context, category models.Category) (bool, error)
	SearchByCategory(ctx context.Context, embedding []float64, category models.Category, limit int) ([]models.TermChunk, error)
}

// GenerationService coordinates the generation saga: debit points, retrieve
// context, generate the draft, persist it through the term service, and
// compensate the debit when persistence fails.
type GenerationService struct {
	chunks   ChunkSearcher
	embedder Embedder
	gen      Generator
	points   PointsAPI
	terms    TermsAPI
}

// GenerationServiceOption is a functional option for GenerationService
type GenerationServiceOption func(*GenerationService)

// WithChunkSearcher sets the term chunk search backend
func WithChunkSearcher(c ChunkSearcher) GenerationServiceOption {
	return func(s *GenerationService) {
		s.chunks = c
	}
}

// WithEmbedder sets the query embedder
func WithEmbedder(e Embedder) GenerationServiceOption {
	return func(s *GenerationService) {
		s.embedder = e
	}
}

// WithGenerator sets the text generator
func WithGenerator(g Generator) GenerationServiceOption {
	return func(s *GenerationService) {
		s.gen = g
	}
}

// WithPointsAPI sets the point service client
func WithPointsAPI(p PointsAPI) GenerationServiceOption {
	return func(s *GenerationService) {
		s.points = p
	}
}

// WithTermsAPI sets the term service client
func WithTermsAPI(t TermsAPI) GenerationServiceOption {
	return func(s *GenerationService) {
		s.terms = t
	}
}

// NewGenerationService creates a new generation service
func NewGenerationService(opts ...GenerationServiceOption) *GenerationService {
	s := &GenerationService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateTermsResult is returned to the caller after a fully persisted run
type GenerateTermsResult struct {
	Terms     string `json:"terms"`
	TermID    string `json:"termId"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
}

// GenerateTerms runs one saga execution to a terminal state. Every external
// call is attempted at most once; repeating a failed request debits points
// again. The debit is only reversed on persistence failure — a category or
// generation failure after a successful debit leaves the debit standing
// (visible in the saga transition log).
func (s *GenerationService) GenerateTerms(ctx context.Context, req models.DraftRequest) (*GenerateTermsResult, error) {
	if s.chunks == nil || s.embedder == nil || s.gen == nil || s.points == nil || s.terms == nil {
		return nil, errors.New("generation service not fully configured")
	}

	run := newSaga(req.RequesterID)

	if missing := missingFields(req); len(missing) > 0 {
		err := fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", "))
		run.fail(SagaValidationFailed, err)
		return nil, err
	}

	// Debit first: generation is paid work
	debit := transaction(req.RequesterID, pointsCost, models.PointDebit)
	if err := s.points.Reduce(ctx, req.RequesterID, debit.Amount); err != nil {
		wrapped := fmt.Errorf("%w: %s", ErrDebitFailed, debitMessage(err))
		run.fail(SagaDebitFailed, wrapped)
		return nil, wrapped
	}
	run.transition(SagaPointsDebited, fmt.Sprintf("(%s)", debit))

	category, ok := models.NormalizeCategory(req.Category)
	if !ok {
		err := fmt.Errorf("%w: %s", ErrCategoryNotFound, req.Category)
		run.fail(SagaCategoryNotFound, err)
		return nil, err
	}

	exists, err := s.chunks.CategoryExists(ctx, category)
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
		run.fail(SagaGenerationFailed, wrapped)
		return nil, wrapped
	}
	if !exists {
		wrapped := fmt.Errorf("%w: %s", ErrCategoryNotFound, req.Category)
		run.fail(SagaCategoryNotFound, wrapped)
		return nil, wrapped
	}

	chunks, err := s.retrieveContext(ctx, category, req.Requirements)
	if err != nil {
		run.fail(SagaGenerationFailed, err)
		return nil, err
	}

	prompt := buildTermsPrompt(req, category, chunks)
	draftText, err := s.gen.Generate(ctx, prompt, 0.2)
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		run.fail(SagaGenerationFailed, wrapped)
		return nil, wrapped
	}
	run.transition(SagaDraftGenerated, fmt.Sprintf("(%d chars)", len(draftText)))

	draft := models.GeneratedDraft{
		Title:         req.ProductName + " 이용 약관",
		Content:       draftText,
		Category:      category,
		ProductName:   req.ProductName,
		Requirement:   req.Requirements,
		UserCompany:   req.CompanyName,
		TermType:      models.TermTypeAIDraft,
		EffectiveDate: req.EffectiveDate,
	}

	record, err := s.terms.CreateTerm(ctx, draft, req.RequesterID)
	if err != nil {
		return nil, s.compensate(ctx, run, err)
	}
	run.transition(SagaPersisted, fmt.Sprintf("(term=%s)", record.ID))

	return &GenerateTermsResult{
		Terms:     draftText,
		TermID:    record.ID,
		Title:     record.Title,
		CreatedAt: record.CreatedAt.Format("2006-01-02"),
	}, nil
}

// compensate credits the debit back after a persistence failure. The two
// outcomes are distinct terminal states: refunded is an ordinary loss, a
// failed refund is ledger drift needing manual reconciliation.
// Once a saga starts it runs to a terminal state: the refund is issued on a
// context detached from the request, so a caller disconnect mid-persist
// cannot cancel the compensating credit.
func (s *GenerationService) compensate(ctx context.Context, run *saga, persistErr error) error {
	refundCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pointsTimeout)
	defer cancel()

	credit := transaction(run.requesterID, pointsCost, models.PointCredit)
	log.Printf("saga %s [%s]: compensating: %s", run.id, run.requesterID, credit)
	if refundErr := s.points.Add(refundCtx, run.requesterID, credit.Amount); refundErr != nil {
		wrapped := fmt.Errorf("%w: persist: %v, refund: %v", ErrRefundFailed, persistErr, refundErr)
		run.fail(SagaRefundFailed, wrapped)
		return wrapped
	}
	wrapped := fmt.Errorf("%w: %v", ErrPersistFailed, persistErr)
	run.fail(SagaRefunded, wrapped)
	return wrapped
}

// retrieveContext embeds the requirements text and pulls the top-k chunks
// from the category's index
func (s *GenerationService) retrieveContext(ctx context.Context, category models.Category, requirements string) ([]models.ContextChunk, error) {
	embedding, err := s.embedder.EmbedQuery(ctx, requirements)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	results, err := s.chunks.SearchByCategory(ctx, embedding, category, retrievalTopK)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexUnavailable, err)
	}
	if len(results) == 0 {
		log.Printf("Warning: no context chunks retrieved for category %s, generating without references", category)
	}

	chunks := make([]models.ContextChunk, 0, len(results))
	for i, r := range results {
		chunks = append(chunks, models.ContextChunk{Content: r.Text, SourceRank: i + 1})
	}
	return chunks, nil
}

// missingFields lists absent required request fields in a stable order
func missingFields(req models.DraftRequest) []string {
	var missing []string
	if req.CompanyName == "" {
		missing = append(missing, "companyName")
	}
	if req.Category == "" {
		missing = append(missing, "category")
	}
	if req.ProductName == "" {
		missing = append(missing, "productName")
	}
	if req.Requirements == "" {
		missing = append(missing, "requirements")
	}
	if req.EffectiveDate == "" {
		missing = append(missing, "effectiveDate")
	}
	if req.RequesterID == "" {
		missing = append(missing, "requester id")
	}
	return missing
}

// debitMessage prefers the point service's own message over a generic one
func debitMessage(err error) string {
	var pe *PointsError
	if errors.As(err, &pe) && pe.Message != "" {
		return pe.Message
	}
	return insufficientPointsMessage
}
