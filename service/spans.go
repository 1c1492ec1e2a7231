package service

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"termdraft-backend/models"
)

// visualizationColors is the fixed label→color mapping for rendered spans.
// Spans with labels outside this map are ignored by the renderer.
var visualizationColors = map[models.EntityLabel]string{
	models.LabelClauseID:     "#ffe6e6",
	models.LabelClauseRef:    "#e6f0ff",
	models.LabelLawRef:       "#fff2cc",
	models.LabelCondition:    "#ffe6f7",
	models.LabelOrganization: "#f0e6ff",
	models.LabelTimeDuration: "#fff0e6",
}

// ResolveSpans converts extracted entities into a non-overlapping span set
// over the clause text. Offsets are character positions; entities whose
// bounds fall outside the clause are dropped. Overlaps are resolved by
// preferring longer spans, then earlier ones; the result is in document
// order.
func ResolveSpans(text string, entities []models.Entity) []models.Span {
	runeLen := len([]rune(text))

	candidates := make([]models.Span, 0, len(entities))
	for _, ent := range entities {
		if ent.Start < 0 || ent.End <= ent.Start || ent.End > runeLen {
			continue
		}
		candidates = append(candidates, models.Span{
			Label: ent.Label,
			Start: ent.Start,
			End:   ent.End,
		})
	}

	// Longest-first greedy selection; stable sort keeps the first-reported
	// span ahead of an equal-length rival
	sort.SliceStable(candidates, func(i, j int) bool {
		li := candidates[i].End - candidates[i].Start
		lj := candidates[j].End - candidates[j].Start
		if li != lj {
			return li > lj
		}
		return candidates[i].Start < candidates[j].Start
	})

	var kept []models.Span
	for _, cand := range candidates {
		overlaps := false
		for _, k := range kept {
			if cand.Start < k.End && k.Start < cand.End {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, cand)
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	return kept
}

// renderClauseHTML renders one clause's text with its resolved spans marked.
// Spans with unmapped labels are skipped; returns "" when nothing renders.
func renderClauseHTML(text string, spans []models.Span) string {
	runes := []rune(text)

	var b strings.Builder
	cursor := 0
	rendered := 0
	for _, span := range spans {
		color, ok := visualizationColors[span.Label]
		if !ok {
			continue
		}
		b.WriteString(html.EscapeString(string(runes[cursor:span.Start])))
		b.WriteString(fmt.Sprintf(
			`<mark style="background: %s; padding: 0.3em 0.4em; margin: 0 0.15em; border-radius: 0.35em;">%s<span style="font-size: 0.7em; font-weight: bold; margin-left: 0.4em; vertical-align: middle;">%s</span></mark>`,
			color,
			html.EscapeString(string(runes[span.Start:span.End])),
			html.EscapeString(string(span.Label)),
		))
		cursor = span.End
		rendered++
	}
	if rendered == 0 {
		return ""
	}
	b.WriteString(html.EscapeString(string(runes[cursor:])))

	return `<div style="line-height: 2.0; white-space: pre-wrap;">` + b.String() + `</div>`
}

// RenderAnnotatedDocument combines per-clause extraction results into one
// HTML artifact. Clauses with no text or no renderable spans are skipped;
// an all-degraded batch still yields a valid (empty-bodied) document.
func RenderAnnotatedDocument(clauses []models.Clause, results []ExtractionResult) string {
	var blocks []string

	for i, result := range results {
		if result.Text == "" || len(result.Entities) == 0 {
			continue
		}
		spans := ResolveSpans(result.Text, result.Entities)
		body := renderClauseHTML(result.Text, spans)
		if body == "" {
			continue
		}

		clauseID := ""
		if i < len(clauses) {
			clauseID = clauses[i].ClauseID
		}

		blocks = append(blocks, fmt.Sprintf(
			"<hr style='margin:30px 40px; border: 1px solid #ccc;'>\n<h3 style='margin-left:40px;'>%s</h3>\n<div style='margin:20px 40px;'>%s</div>",
			html.EscapeString(clauseID),
			body,
		))
	}

	return "<html><head><meta charset='utf-8'></head><body>" +
		strings.Join(blocks, "\n") +
		"</body></html>"
}
