package service

import "errors"

var (
	ErrValidation       = errors.New("missing required request fields")
	ErrCategoryNotFound = errors.New("no term index exists for category")
	ErrIndexUnavailable = errors.New("term index could not be opened")
	ErrDebitFailed      = errors.New("failed to debit points")
	ErrGenerationFailed = errors.New("failed to generate draft")
	ErrPersistFailed    = errors.New("failed to persist draft; points refunded")
	ErrRefundFailed     = errors.New("failed to persist draft and refund points; manual reconciliation required")
	ErrEmbeddingFailed  = errors.New("failed to generate embedding")
	ErrNoClauses        = errors.New("no clauses could be extracted from text")
	ErrTimeout          = errors.New("external call timed out")
)
