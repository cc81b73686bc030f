package importer

import (
	"errors"
	"fmt"
	"io"
)

// BankFormat identifies a built-in bank preset.
type BankFormat string

const (
	BankBarclays  BankFormat = "barclays"
	BankHSBC      BankFormat = "hsbc"
	BankLloyds    BankFormat = "lloyds"
	BankMonzo     BankFormat = "monzo"
	BankNatWest   BankFormat = "natwest"
	BankSantander BankFormat = "santander"
	BankStarling  BankFormat = "starling"
)

// builtinBanks lists the presets in display order.
var builtinBanks = []BankFormat{
	BankBarclays,
	BankHSBC,
	BankLloyds,
	BankMonzo,
	BankNatWest,
	BankSantander,
	BankStarling,
}

// bankPresets maps each built-in bank to the column layout of its CSV
// export. Adding a bank is a data addition.
var bankPresets = map[BankFormat]ColumnMapping{
	BankBarclays: {
		DateColumn:        "Date",
		DescriptionColumn: "Memo",
		AmountColumn:      "Amount",
		DateFormat:        "dd/MM/yyyy",
	},
	BankHSBC: {
		DateColumn:        "Date",
		DescriptionColumn: "Description",
		AmountColumn:      "Amount",
		DateFormat:        "dd/MM/yyyy",
	},
	BankLloyds: {
		DateColumn:        "Transaction Date",
		DescriptionColumn: "Transaction Description",
		IncomeColumn:      "Credit Amount",
		ExpenseColumn:     "Debit Amount",
		DateFormat:        "dd/MM/yyyy",
	},
	BankMonzo: {
		DateColumn:        "Date",
		DescriptionColumn: "Name",
		AmountColumn:      "Amount",
		DateFormat:        "dd/MM/yyyy",
	},
	BankNatWest: {
		DateColumn:        "Date",
		DescriptionColumn: "Description",
		AmountColumn:      "Value",
		DateFormat:        "dd MMM yyyy",
	},
	BankSantander: {
		DateColumn:        "Date",
		DescriptionColumn: "Description",
		IncomeColumn:      "Money in",
		ExpenseColumn:     "Money out",
		DateFormat:        "dd/MM/yyyy",
	},
	BankStarling: {
		DateColumn:        "Date",
		DescriptionColumn: "Counter Party",
		AmountColumn:      "Amount (GBP)",
		DateFormat:        "dd/MM/yyyy",
	},
}

// BuiltinBanks returns the built-in bank presets in display order.
func BuiltinBanks() []BankFormat {
	out := make([]BankFormat, len(builtinBanks))
	copy(out, builtinBanks)
	return out
}

// Mapping returns the preset column mapping for the bank.
func (b BankFormat) Mapping() (ColumnMapping, error) {
	m, ok := bankPresets[b]
	if !ok {
		return ColumnMapping{}, fmt.Errorf("unknown bank format %q", b)
	}
	m.Bank = b
	return m, nil
}

// ColumnMapping declares which statement columns hold each field. Column
// names must match the CSV header text case-sensitively. Exactly one amount
// mode is configured: a single signed column, or split income/expense
// columns.
type ColumnMapping struct {
	DateColumn        string
	DescriptionColumn string

	AmountColumn  string // single signed column, sign preserved verbatim
	IncomeColumn  string // split mode: populated cell becomes positive
	ExpenseColumn string // split mode: populated cell becomes negative

	// DateFormat is a Go reference layout or a bank-style pattern such as
	// "dd/MM/yyyy".
	DateFormat string

	Bank BankFormat // preset that produced the mapping, if any
}

// Split reports whether the mapping uses separate income/expense columns.
func (m ColumnMapping) Split() bool {
	return m.AmountColumn == ""
}

// Validate checks the mapping is complete and uses exactly one amount mode.
func (m ColumnMapping) Validate() error {
	if m.DateColumn == "" {
		return errors.New("date column not set")
	}
	if m.DescriptionColumn == "" {
		return errors.New("description column not set")
	}
	if m.DateFormat == "" {
		return errors.New("date format not set")
	}

	single := m.AmountColumn != ""
	split := m.IncomeColumn != "" || m.ExpenseColumn != ""
	switch {
	case single && split:
		return errors.New("amount column and income/expense columns are mutually exclusive")
	case !single && !split:
		return errors.New("no amount columns configured")
	case split && m.IncomeColumn == "":
		return errors.New("split mapping missing income column")
	case split && m.ExpenseColumn == "":
		return errors.New("split mapping missing expense column")
	}
	return nil
}

// ParseRequest is the canonical input every parser consumes: a resolvable
// statement source plus its column mapping. Source takes precedence over
// Path when both are set.
type ParseRequest struct {
	Path    string
	Source  io.Reader
	Mapping ColumnMapping
}

// Request converts the mapping into a parse request for a statement file on
// disk.
func (m ColumnMapping) Request(path string) ParseRequest {
	return ParseRequest{Path: path, Mapping: m}
}

// RequestFrom converts the mapping into a parse request reading from r.
func (m ColumnMapping) RequestFrom(r io.Reader) ParseRequest {
	return ParseRequest{Source: r, Mapping: m}
}
