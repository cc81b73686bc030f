package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is a single row in ledger.csv: one income or expense entry.
type Record struct {
	ID          string // "YYYY-MM-NNN"
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = expense, positive = income
	Category    string
	Source      string // where the record came from ("manual", statement file name)
	Notes       string
}

// RecordFields holds the mutable fields of a Record for updates. The ID and
// Source are fixed at creation.
type RecordFields struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Category    string
}

// Fields returns the record's mutable fields.
func (r Record) Fields() RecordFields {
	return RecordFields{
		Date:        r.Date,
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
	}
}
