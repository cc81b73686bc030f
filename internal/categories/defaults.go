package categories

import "github.com/booked-dev/booked/internal/model"

// DefaultCategories returns the starting chart for a sole trader, with
// tax boxes from the SA103F self-employment pages.
func DefaultCategories() []model.Category {
	return []model.Category{
		{Name: "Sales", Kind: model.KindIncome, TaxBox: "sa103f_15", Description: "Sales of goods and services"},
		{Name: "Other income", Kind: model.KindIncome, TaxBox: "sa103f_16", Description: "Other business income"},
		{Name: "Cost of goods", Kind: model.KindExpense, TaxBox: "sa103f_17", Description: "Goods bought for resale"},
		{Name: "Subcontractors", Kind: model.KindExpense, TaxBox: "sa103f_18", Description: "Payments to subcontractors"},
		{Name: "Staff costs", Kind: model.KindExpense, TaxBox: "sa103f_19", Description: "Wages, salaries and staff costs"},
		{Name: "Travel", Kind: model.KindExpense, TaxBox: "sa103f_20", Description: "Car, van and travel expenses"},
		{Name: "Premises costs", Kind: model.KindExpense, TaxBox: "sa103f_21", Description: "Rent, rates, power and insurance"},
		{Name: "Repairs", Kind: model.KindExpense, TaxBox: "sa103f_22", Description: "Repairs and maintenance"},
		{Name: "Office costs", Kind: model.KindExpense, TaxBox: "sa103f_23", Description: "Phone, internet, stationery and software"},
		{Name: "Advertising", Kind: model.KindExpense, TaxBox: "sa103f_24", Description: "Advertising and marketing"},
		{Name: "Bank charges", Kind: model.KindExpense, TaxBox: "sa103f_26", Description: "Bank, card and other financial charges"},
		{Name: "Professional fees", Kind: model.KindExpense, TaxBox: "sa103f_28", Description: "Accountancy and legal fees"},
		{Name: "Other expenses", Kind: model.KindExpense, TaxBox: "sa103f_30", Description: "Other allowable business expenses"},
	}
}
