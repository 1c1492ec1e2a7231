package models

import "time"

// TermTypeAIDraft marks records produced by the generation pipeline
const TermTypeAIDraft = "AI_DRAFT"

// DraftRequest carries the inputs for one terms-of-service generation.
// All fields are required; RequesterID comes from the authenticated header,
// not the request body.
type DraftRequest struct {
	CompanyName   string `json:"companyName"`
	Category      string `json:"category"`
	ProductName   string `json:"productName"`
	Requirements  string `json:"requirements"`
	EffectiveDate string `json:"effectiveDate"`
	RequesterID   string `json:"-"`
}

// GeneratedDraft is the immutable output of the generation step and the
// payload submitted to the term service for persistence.
type GeneratedDraft struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Category      Category `json:"category"`
	ProductName   string   `json:"productName"`
	Requirement   string   `json:"requirement"`
	UserCompany   string   `json:"userCompany"`
	TermType      string   `json:"termType"`
	EffectiveDate string   `json:"effectiveDate"`
}

// TermRecord is what the term service reports back after persisting a draft
type TermRecord struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// ContextChunk is one retrieved reference passage, ranked by relevance
type ContextChunk struct {
	Content    string `json:"content"`
	SourceRank int    `json:"source_rank"`
}
