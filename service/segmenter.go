package service

import (
	"regexp"
	"strings"

	"termdraft-backend/models"
)

// clauseHeadingPattern matches clause heading lines of the form
// "제N조 (제목)" standing alone on a line
var clauseHeadingPattern = regexp.MustCompile(`(?m)^제\d+조\s*\(.*?\)\s*$`)

// markupPattern matches runs of the cosmetic asterisk markup some model
// outputs carry despite the prompt forbidding it
var markupPattern = regexp.MustCompile(`\*+`)

// SegmentClauses splits a generated document into its ordered clauses.
// Each clause runs from its heading line to the next heading (exclusive) or
// end of text, sliced directly from the input with no gaps or overlaps.
// Leading text before the first heading becomes a preamble clause; a
// document with no headings at all becomes a single whole-document clause.
// Empty input yields no clauses.
func SegmentClauses(text string) []models.Clause {
	matches := clauseHeadingPattern.FindAllStringIndex(text, -1)

	var clauses []models.Clause

	if len(matches) == 0 {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []models.Clause{{
			ClauseID: models.ClauseIDWhole,
			Text:     stripMarkup(text),
		}}
	}

	if matches[0][0] > 0 {
		preamble := text[:matches[0][0]]
		if strings.TrimSpace(preamble) != "" {
			clauses = append(clauses, models.Clause{
				ClauseID: models.ClauseIDPreamble,
				Text:     stripMarkup(preamble),
			})
		}
	}

	for i, match := range matches {
		heading := strings.TrimSpace(text[match[0]:match[1]])
		start := match[0]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		clauses = append(clauses, models.Clause{
			ClauseID: heading,
			Text:     stripMarkup(text[start:end]),
		})
	}

	return clauses
}

func stripMarkup(s string) string {
	return markupPattern.ReplaceAllString(s, "")
}
