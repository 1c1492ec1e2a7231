package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"termdraft-backend/models"
)

// nerPromptTemplate instructs the model to annotate one clause. The output
// contract is a single bare JSON object; fenced output is still tolerated
// by the parser below.
const nerPromptTemplate = `You are an expert in analyzing legal and insurance documents. Your task is to extract key entities from a single clause of an insurance policy.

Analyze the following clause and extract entities based on the specified labels.

**Clause to Analyze:**
%s

**Instructions:**
1.  Identify and extract keywords that match the labels defined below.
2.  The output MUST be a single JSON object. Do not wrap it in a list or markdown code blocks.
3.  The JSON object must have two keys: "text" (the original clause) and "entities" (a list of extracted entities).
4.  For each entity, provide "text" (the extracted keyword), "label", "start" (the character start index in the original clause), and "end" (the character end index).
5.  Ensure the start and end offsets are accurate.
6.  Only use the provided labels. Do not create new ones.

**Allowed Labels:**
- **CLAUSE_ID**: The identifier of the clause, e.g., "제3조" from "제3조 (보장개시일)".
- **CLAUSE_REF**: A reference to another clause, e.g., "제5조" from "제5조에 따라".
- **LAW_REF**: A reference to a law, e.g., "상법 제103조".
- **CONDITION**: A condition or situation for an action, e.g., "보험료를 미납한 경우".
- **ORGANIZATION**: An organization or party to the contract, e.g., "회사", "계약자".
- **TIME_DURATION**: A specific period or date, e.g., "3년간", "2025.04.03", "3영업일".

**JSON Output Format:**
{
  "text": "The full original clause text...",
  "entities": [
    { "text": "keyword1", "label": "LABEL", "start": 0, "end": 5 }
  ]
}`

// ExtractionResult is the annotation record for one clause. Degraded marks
// results where the model call or parse failed and the entity list was
// emptied rather than failing the batch; callers must not mistake it for a
// crash.
type ExtractionResult struct {
	Text     string          `json:"text"`
	Entities []models.Entity `json:"entities"`
	Degraded bool            `json:"-"`
}

// EntityExtractor runs per-clause entity extraction through a Generator
type EntityExtractor struct {
	gen Generator
}

// NewEntityExtractor creates an entity extractor
func NewEntityExtractor(gen Generator) *EntityExtractor {
	return &EntityExtractor{gen: gen}
}

// Extract annotates a single clause. It never returns an error: any model
// or parse failure degrades to an empty entity list so the rest of the
// batch keeps going.
func (e *EntityExtractor) Extract(ctx context.Context, clauseText string) ExtractionResult {
	prompt := fmt.Sprintf(nerPromptTemplate, clauseText)

	raw, err := e.gen.Generate(ctx, prompt, 0.0)
	if err != nil {
		log.Printf("Warning: entity extraction failed for clause %q: %v", clausePreview(clauseText), err)
		return ExtractionResult{Text: clauseText, Degraded: true}
	}

	var parsed struct {
		Text     string          `json:"text"`
		Entities []models.Entity `json:"entities"`
	}
	if err := json.Unmarshal([]byte(stripJSONFence(raw)), &parsed); err != nil {
		log.Printf("Warning: failed to parse extraction output for clause %q: %v", clausePreview(clauseText), err)
		return ExtractionResult{Text: clauseText, Degraded: true}
	}

	// The model echoes the clause back; trust the original over the echo
	return ExtractionResult{Text: clauseText, Entities: parsed.Entities}
}

// ExtractAll annotates every clause in document order
func (e *EntityExtractor) ExtractAll(ctx context.Context, clauses []models.Clause) []ExtractionResult {
	results := make([]ExtractionResult, 0, len(clauses))
	for _, clause := range clauses {
		results = append(results, e.Extract(ctx, clause.Text))
	}
	return results
}

// stripJSONFence removes a markdown code fence around a JSON payload if the
// model added one anyway
func stripJSONFence(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "```json"); idx >= 0 {
		s = s[idx+len("```json"):]
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
		return strings.TrimSpace(s)
	}
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
		return strings.TrimSpace(s)
	}
	return s
}

func clausePreview(s string) string {
	const max = 50
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return s
}
