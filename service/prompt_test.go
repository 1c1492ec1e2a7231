package service

import (
	"strings"
	"testing"

	"termdraft-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildTermsPrompt(t *testing.T) {
	req := models.DraftRequest{
		CompanyName:   "무지개은행",
		ProductName:   "정기예금",
		Requirements:  "중도해지 조건을 명시할 것",
		EffectiveDate: "2026-01-01",
	}
	chunks := []models.ContextChunk{
		{Content: "참고 조항 하나", SourceRank: 1},
		{Content: "참고 조항 둘", SourceRank: 2},
	}

	prompt := buildTermsPrompt(req, models.CategoryDeposit, chunks)

	assert.Contains(t, prompt, "무지개은행")
	assert.Contains(t, prompt, "정기예금")
	assert.Contains(t, prompt, "상품 분류는 다음과 같아:\n예금")
	assert.Contains(t, prompt, "중도해지 조건을 명시할 것")
	assert.Contains(t, prompt, "2026-01-01")
	assert.Contains(t, prompt, "참고 조항 하나\n\n참고 조항 둘")

	// company, product, category in order; context last
	assert.Less(t, strings.Index(prompt, "무지개은행"), strings.Index(prompt, "정기예금"))
	assert.Less(t, strings.Index(prompt, "정기예금"), strings.Index(prompt, "상품 분류는"))
	assert.Greater(t, strings.Index(prompt, "참고 조항 둘"), strings.Index(prompt, "2026-01-01"))
}

func TestBuildTermsPrompt_CategoryUsesDisplayLabel(t *testing.T) {
	req := models.DraftRequest{
		CompanyName:   "무지개은행",
		ProductName:   "주담대",
		Requirements:  "요구사항",
		EffectiveDate: "2026-01-01",
	}

	prompt := buildTermsPrompt(req, models.CategoryLoan, nil)

	assert.Contains(t, prompt, "주택담보대출")
	assert.NotContains(t, prompt, "loan")
}

func TestBuildTermsPrompt_NoChunks(t *testing.T) {
	req := models.DraftRequest{
		CompanyName:   "무지개은행",
		ProductName:   "정기예금",
		Requirements:  "요구사항",
		EffectiveDate: "2026-01-01",
	}

	prompt := buildTermsPrompt(req, models.CategoryDeposit, nil)

	assert.Contains(t, prompt, "무지개은행")
	assert.NotContains(t, prompt, "%s")
}
