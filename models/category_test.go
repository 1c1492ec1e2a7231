package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		label string
		want  Category
		ok    bool
	}{
		{"deposit", CategoryDeposit, true},
		{"loan", CategoryLoan, true},
		{"mortgage_loan", CategoryLoan, true},
		{"mortgage-loan", CategoryLoan, true},
		{"cancer_insurance", CategoryCancerInsurance, true},
		{"주택담보대출", CategoryLoan, true},
		{"예금", CategoryDeposit, true},
		{"life_insurance", "", false},
		{"", "", false},
		{"DEPOSIT", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeCategory(tc.label)
		assert.Equal(t, tc.ok, ok, "label %q", tc.label)
		assert.Equal(t, tc.want, got, "label %q", tc.label)
	}
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "예금", CategoryDeposit.DisplayLabel())
	assert.Equal(t, "주택담보대출", CategoryLoan.DisplayLabel())
	assert.Equal(t, "other", Category("other").DisplayLabel())
}
