package models

// Sentinel clause identifiers. A document with no clause headings becomes a
// single clause tagged ClauseIDWhole; leading text before the first heading
// becomes a ClauseIDPreamble clause.
const (
	ClauseIDPreamble = "머리말"
	ClauseIDWhole    = "전체"
)

// Clause is one heading-delimited section of a generated document, the unit
// of independent entity extraction
type Clause struct {
	ClauseID string `json:"clause_id"`
	Text     string `json:"text"`
}

// EntityLabel is the closed label set the extractor prompts for. Values
// outside this set may still arrive from the model; rendering ignores them.
type EntityLabel string

const (
	LabelClauseID     EntityLabel = "CLAUSE_ID"
	LabelClauseRef    EntityLabel = "CLAUSE_REF"
	LabelLawRef       EntityLabel = "LAW_REF"
	LabelCondition    EntityLabel = "CONDITION"
	LabelOrganization EntityLabel = "ORGANIZATION"
	LabelTimeDuration EntityLabel = "TIME_DURATION"
)

// Entity is one extracted keyword with character offsets into the clause
// text it was extracted from (not the whole document)
type Entity struct {
	Text  string      `json:"text"`
	Label EntityLabel `json:"label"`
	Start int         `json:"start"`
	End   int         `json:"end"`
}

// Span is a validated, non-overlapping Entity selected for rendering
type Span struct {
	Label EntityLabel
	Start int
	End   int
}
