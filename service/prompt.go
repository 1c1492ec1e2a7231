package service

import (
	"fmt"
	"strings"

	"termdraft-backend/models"
)

// termsPromptTemplate is the fixed drafting instruction. Substitution order:
// company name, product name, category label, requirements, effective date,
// joined context.
const termsPromptTemplate = `기업 이름은 다음과 같아:
%s

상품 이름은 다음과 같아:
%s

상품 분류는 다음과 같아:
%s

다음은 기업이 제공한 상품 정보야:
%s

다음은 해당 약관/계약의 시행 날짜야:
%s

그리고 아래는 참고용 약관 문서야:
%s

위의 상품 정보와 약관 문서를 참고해서 이 상품에 맞는 보험 약관 초안을 자세하게 작성해줘.
기업에서 바로 약관으로 사용할 수 있을 정도로 자세하게 작성해주고, 독소조항과 소비자의 악용이 우려되는 내용은 특히 신경써줘.
참고하라고 준 약관 이외에도 네가 이미 알고있는 약관을 참고해도 돼. 최대한 자세하게 작성하는게 네 역할이야.
작성한 약관 초안 앞뒤로 아무 코멘트 달지 말고, **과 같은 마크업은 절대 사용하지마. 그냥 약관 내용에 '*' 기호를 하나도 넣지 마.
최소 50 조항 이상 작성해줘. 그리고 조항에 따른 하위 조항도 여러개 추가해주고, 그것에 대한 설명도 자세히 해줘.
조항을 번호를 표기할 때 예시로는 제1조, 제2조, 1., 2. 이런식으로 제n조와 n.으로만 표기해줘.
조항을 작성할 때 메인이 되는 부분은 보장 관련된 내용이여야 해. 보장 관련 금액과 보장이 안 되는 부분 등 상세히 작성해줘.
약관 초안의 전체 길이를 최대한 길게 작성해줘.
작성할 때 '일정 금액', '일정 기간'과 같은 추상적인 표현은 사용하지 말고, 구체적인 숫자, 기간, 기준 또는 참조 가능한 공시 위치를 명시해줘.
중요한 책임 및 면책조항에서 법률 용어를 사용하되, 고객이 이해하기 쉽도록 풀어서 작성하거나, 예시를 추가해줘.
이 외에도 중요한 조항에는 구체적인 절차나 방법을 명시하고, 애매할 수 있는 표현이 없도록 구체적인 조건을 제시해줘.
약관을 보는 고객이 오해할 만한 내용을 없애고 모든 내용을 구체적으로 명시해야해.
그리고 '중과실', '부당하다고 판단 되는 경우'와 같이 여러 해석이 가능한 내용은 구체적인 예시를 드는 등 부가설명을 해줘.
반복되는 문구가 여러 조항에서 반복된다면, 매번 설명하지 말고 용어를 정의하는 조항에 작성해서 간결하게 작성해줘.
마지막으로 출력하기 전에 한 번 읽어보고 미흡한 점이나 독소조항, 리스크 등 수정할 부분을 확인하고 수정할 부분이 있다면 수정해서 출력해줘.`

// buildTermsPrompt fills the drafting template. Pure substitution; the
// caller validates required fields and resolves the category before this
// point. The category goes in under its Korean display label, matching the
// rest of the prompt's language.
func buildTermsPrompt(req models.DraftRequest, category models.Category, chunks []models.ContextChunk) string {
	contexts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		contexts = append(contexts, chunk.Content)
	}

	return fmt.Sprintf(termsPromptTemplate,
		req.CompanyName,
		req.ProductName,
		category.DisplayLabel(),
		req.Requirements,
		req.EffectiveDate,
		strings.Join(contexts, "\n\n"),
	)
}
