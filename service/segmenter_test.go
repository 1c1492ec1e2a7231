package service

import (
	"strings"
	"testing"

	"termdraft-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTerms = `제1조 (목적)
이 약관은 회사가 제공하는 상품의 이용 조건을 규정함을 목적으로 합니다.
제2조 (정의)
이 약관에서 사용하는 용어의 뜻은 다음과 같습니다.
제3조 (보장개시일)
회사의 보장은 2025년 4월 3일부터 개시됩니다.
`

func TestSegmentClauses(t *testing.T) {
	clauses := SegmentClauses(sampleTerms)

	require.Len(t, clauses, 3)
	assert.Equal(t, "제1조 (목적)", clauses[0].ClauseID)
	assert.Equal(t, "제2조 (정의)", clauses[1].ClauseID)
	assert.Equal(t, "제3조 (보장개시일)", clauses[2].ClauseID)
	assert.Contains(t, clauses[0].Text, "이용 조건을 규정함")
	assert.Contains(t, clauses[2].Text, "2025년 4월 3일")
}

func TestSegmentClauses_TextsConcatenateToOriginal(t *testing.T) {
	clauses := SegmentClauses(sampleTerms)

	var b strings.Builder
	for _, clause := range clauses {
		b.WriteString(clause.Text)
	}
	assert.Equal(t, sampleTerms, b.String())
}

func TestSegmentClauses_Preamble(t *testing.T) {
	text := "주식회사 무지개생명 보험약관\n\n제1조 (목적)\n본문입니다.\n"
	clauses := SegmentClauses(text)

	require.Len(t, clauses, 2)
	assert.Equal(t, models.ClauseIDPreamble, clauses[0].ClauseID)
	assert.Contains(t, clauses[0].Text, "무지개생명")
	assert.Equal(t, "제1조 (목적)", clauses[1].ClauseID)

	var b strings.Builder
	for _, clause := range clauses {
		b.WriteString(clause.Text)
	}
	assert.Equal(t, text, b.String())
}

func TestSegmentClauses_NoHeadings(t *testing.T) {
	clauses := SegmentClauses("약관 본문이지만 조항 구분이 없는 문서입니다.")

	require.Len(t, clauses, 1)
	assert.Equal(t, models.ClauseIDWhole, clauses[0].ClauseID)
	assert.Equal(t, "약관 본문이지만 조항 구분이 없는 문서입니다.", clauses[0].Text)
}

func TestSegmentClauses_EmptyInput(t *testing.T) {
	assert.Empty(t, SegmentClauses(""))
	assert.Empty(t, SegmentClauses("   \n\t\n"))
}

func TestSegmentClauses_StripsMarkup(t *testing.T) {
	text := "제1조 (목적)\n**중요** 이 조항은 *별표*가 섞여 있습니다.\n"
	clauses := SegmentClauses(text)

	require.Len(t, clauses, 1)
	assert.NotContains(t, clauses[0].Text, "*")
	assert.Contains(t, clauses[0].Text, "중요")
}

func TestSegmentClauses_HeadingMidLineDoesNotSplit(t *testing.T) {
	// A clause reference inside a sentence is not a heading
	text := "제1조 (목적)\n제5조 (해지)에 따라 처리합니다.\n"
	clauses := SegmentClauses(text)

	require.Len(t, clauses, 1)
	assert.Equal(t, "제1조 (목적)", clauses[0].ClauseID)
}
