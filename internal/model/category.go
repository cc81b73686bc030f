package model

// CategoryKind distinguishes money coming in from money going out.
type CategoryKind string

const (
	KindIncome  CategoryKind = "income"
	KindExpense CategoryKind = "expense"
)

// Category is one entry in the chart of categories. TaxBox maps the
// category to a box on the SA103F self-employment pages, e.g. "sa103f_23".
type Category struct {
	Name        string
	Kind        CategoryKind
	TaxBox      string
	Description string
}
