package models

// Category identifies one persisted clause index in the knowledge base
type Category string

const (
	CategoryDeposit         Category = "deposit"
	CategorySavings         Category = "savings"
	CategoryLoan            Category = "loan"
	CategoryCancerInsurance Category = "cancer_insurance"
	CategoryCarInsurance    Category = "car_insurance"
)

// categoryAliases maps request-side labels onto canonical categories.
// Mortgage loans share the generic loan index; the Korean display labels
// used by the frontend resolve to the same canonical values.
var categoryAliases = map[string]Category{
	"deposit":          CategoryDeposit,
	"savings":          CategorySavings,
	"loan":             CategoryLoan,
	"mortgage_loan":    CategoryLoan,
	"mortgage-loan":    CategoryLoan,
	"cancer_insurance": CategoryCancerInsurance,
	"car_insurance":    CategoryCarInsurance,
	"예금":               CategoryDeposit,
	"적금":               CategorySavings,
	"주택담보대출":           CategoryLoan,
	"암보험":              CategoryCancerInsurance,
	"자동차보험":            CategoryCarInsurance,
}

// NormalizeCategory resolves a request category label to its canonical
// category. The second return is false when the label is unknown.
func NormalizeCategory(label string) (Category, bool) {
	c, ok := categoryAliases[label]
	return c, ok
}

// DisplayLabel returns the Korean label used in drafting prompts
func (c Category) DisplayLabel() string {
	switch c {
	case CategoryDeposit:
		return "예금"
	case CategorySavings:
		return "적금"
	case CategoryLoan:
		return "주택담보대출"
	case CategoryCancerInsurance:
		return "암보험"
	case CategoryCarInsurance:
		return "자동차보험"
	}
	return string(c)
}
