package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/booked-dev/booked/internal/id"
	"github.com/booked-dev/booked/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	RecordID    string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.RecordID, e.Description)
}

// CategoryChecker tests whether a category name exists in the chart.
type CategoryChecker interface {
	Exists(name string) bool
}

// ValidateRecords enforces 5 invariants on a month's ledger records.
func ValidateRecords(records []model.Record, categories CategoryChecker, year, month int) []ValidationError {
	var errs []ValidationError

	two := decimal.NewFromInt(100)
	for _, rec := range records {
		// Invariant 1: nonzero amount.
		if rec.Amount.IsZero() {
			errs = append(errs, ValidationError{
				Invariant:   1,
				RecordID:    rec.ID,
				Description: "amount must be nonzero",
			})
		}

		// Invariant 2: exact decimals, no more than 2 decimal places.
		if !rec.Amount.Mul(two).Equal(rec.Amount.Mul(two).Floor()) {
			errs = append(errs, ValidationError{
				Invariant:   2,
				RecordID:    rec.ID,
				Description: fmt.Sprintf("amount %s has more than 2 decimal places", rec.Amount),
			})
		}

		// Invariant 3: categorized records reference the chart. Empty means
		// uncategorized, which is allowed.
		if rec.Category != "" && !categories.Exists(rec.Category) {
			errs = append(errs, ValidationError{
				Invariant:   3,
				RecordID:    rec.ID,
				Description: fmt.Sprintf("unknown category %q", rec.Category),
			})
		}

		// Invariant 4: date within the month file.
		if rec.Date.Year() != year || int(rec.Date.Month()) != month {
			errs = append(errs, ValidationError{
				Invariant:   4,
				RecordID:    rec.ID,
				Description: fmt.Sprintf("date %s not in %04d-%02d", rec.Date.Format("2006-01-02"), year, month),
			})
		}
	}

	// Invariant 5: unique sequential IDs, contiguous 1..N.
	seqSeen := make(map[int]bool)
	for _, rec := range records {
		recYear, recMonth, seq, err := id.ParseRecordID(rec.ID)
		if err != nil {
			errs = append(errs, ValidationError{
				Invariant:   5,
				RecordID:    rec.ID,
				Description: fmt.Sprintf("invalid record ID: %v", err),
			})
			continue
		}
		if recYear != year || recMonth != month {
			errs = append(errs, ValidationError{
				Invariant:   5,
				RecordID:    rec.ID,
				Description: fmt.Sprintf("record ID month %04d-%02d does not match file %04d-%02d", recYear, recMonth, year, month),
			})
			continue
		}
		if seqSeen[seq] {
			errs = append(errs, ValidationError{
				Invariant:   5,
				RecordID:    rec.ID,
				Description: fmt.Sprintf("duplicate sequence %d", seq),
			})
			continue
		}
		seqSeen[seq] = true
	}
	for i := 1; i <= len(seqSeen); i++ {
		if !seqSeen[i] {
			errs = append(errs, ValidationError{
				Invariant:   5,
				RecordID:    fmt.Sprintf("seq %d", i),
				Description: fmt.Sprintf("missing sequence %d in 1..%d", i, len(seqSeen)),
			})
		}
	}

	return errs
}
