package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/booked-dev/booked/internal/model"
)

// RowError describes one malformed statement row. Row is 1-based over data
// rows, excluding the header.
type RowError struct {
	Row int
	Msg string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Msg)
}

// ParseResult is the outcome of parsing one statement. Transactions keep the
// statement's row order; every excluded row is accounted for in Errors.
type ParseResult struct {
	Transactions []model.StatementTransaction
	FormatID     string
	Errors       []RowError
}

// ErrNoSource reports a parse request with no resolvable statement source.
var ErrNoSource = errors.New("statement source not specified")

// CSVParser parses bank statement CSV exports driven by a column mapping.
type CSVParser struct{}

// NewCSVParser returns the built-in CSV statement parser.
func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

// FormatID returns the stable format identifier.
func (p *CSVParser) FormatID() string { return FormatCSV }

// Name returns the importer name shown to users.
func (p *CSVParser) Name() string { return "CSV bank statement" }

// Extensions returns the file extensions the parser claims.
func (p *CSVParser) Extensions() []string { return []string{".csv"} }

// Banks returns the bank presets the parser can pre-configure.
func (p *CSVParser) Banks() []BankFormat { return BuiltinBanks() }

// Parse reads the request's statement and normalizes each data row. Rows
// fail independently: a malformed row records a RowError and is excluded
// from Transactions without aborting the parse. Configuration problems
// (no source, invalid mapping, mapped column missing from the header) fail
// the whole parse before any row is read.
func (p *CSVParser) Parse(req ParseRequest) (*ParseResult, error) {
	src := req.Source
	if src == nil {
		if req.Path == "" {
			return nil, ErrNoSource
		}
		f, err := os.Open(req.Path)
		if err != nil {
			return nil, fmt.Errorf("opening statement: %w", err)
		}
		defer f.Close()
		src = f
	}

	if err := req.Mapping.Validate(); err != nil {
		return nil, fmt.Errorf("column mapping: %w", err)
	}

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("statement has no header row")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cols, err := resolveColumns(header, req.Mapping)
	if err != nil {
		return nil, err
	}

	layout := DateLayout(req.Mapping.DateFormat)

	result := &ParseResult{FormatID: p.FormatID()}
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Msg: err.Error()})
			continue
		}
		txn, err := parseRow(rec, cols, layout, row)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: row, Msg: err.Error()})
			continue
		}
		result.Transactions = append(result.Transactions, txn)
	}
	return result, nil
}

// Preview samples the head of a statement before a mapping exists. It never
// fails: unreadable input truncates the preview instead.
func (p *CSVParser) Preview(r io.Reader, limit int) Preview {
	var pv Preview
	if r == nil {
		return pv
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return pv
	}
	pv.Headers = header

	for len(pv.Rows) < limit {
		rec, err := cr.Read()
		if err != nil {
			break
		}
		pv.Rows = append(pv.Rows, rec)
	}
	return pv
}

// Preview is a head-of-file sample: the header row plus up to N data rows.
type Preview struct {
	Headers []string
	Rows    [][]string
}

// columns holds resolved header indexes. -1 marks an unused column.
type columns struct {
	date    int
	desc    int
	amount  int
	income  int
	expense int
}

// resolveColumns locates each mapped column in the header. Names match
// case-sensitively.
func resolveColumns(header []string, m ColumnMapping) (columns, error) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	cols := columns{amount: -1, income: -1, expense: -1}
	var err error
	if cols.date, err = findColumn(header, m.DateColumn); err != nil {
		return cols, err
	}
	if cols.desc, err = findColumn(header, m.DescriptionColumn); err != nil {
		return cols, err
	}
	if m.Split() {
		if cols.income, err = findColumn(header, m.IncomeColumn); err != nil {
			return cols, err
		}
		cols.expense, err = findColumn(header, m.ExpenseColumn)
		return cols, err
	}
	cols.amount, err = findColumn(header, m.AmountColumn)
	return cols, err
}

func findColumn(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.TrimSpace(h) == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("column %q not found in header", name)
}

func parseRow(rec []string, cols columns, layout string, row int) (model.StatementTransaction, error) {
	var zero model.StatementTransaction

	cell, err := cellAt(rec, cols.date)
	if err != nil {
		return zero, err
	}
	dateText := strings.TrimSpace(cell)
	date, err := time.Parse(layout, dateText)
	if err != nil {
		return zero, fmt.Errorf("parsing date %q: %w", dateText, err)
	}

	desc, err := cellAt(rec, cols.desc)
	if err != nil {
		return zero, err
	}

	amount, err := rowAmount(rec, cols)
	if err != nil {
		return zero, err
	}

	return model.StatementTransaction{
		Line:        row,
		Date:        date,
		Description: desc,
		Amount:      amount,
	}, nil
}

// cellAt guards against rows shorter than the header.
func cellAt(rec []string, idx int) (string, error) {
	if idx >= len(rec) {
		return "", fmt.Errorf("missing column %d", idx+1)
	}
	return rec[idx], nil
}

// rowAmount normalizes the amount cells. Split mappings require exactly one
// populated cell: income becomes positive, expense negative. A single
// signed column keeps its literal sign.
func rowAmount(rec []string, cols columns) (decimal.Decimal, error) {
	if cols.amount >= 0 {
		cell, err := cellAt(rec, cols.amount)
		if err != nil {
			return decimal.Zero, err
		}
		return parseAmount(cell)
	}

	in, err := cellAt(rec, cols.income)
	if err != nil {
		return decimal.Zero, err
	}
	out, err := cellAt(rec, cols.expense)
	if err != nil {
		return decimal.Zero, err
	}

	in, out = strings.TrimSpace(in), strings.TrimSpace(out)
	switch {
	case in != "" && out != "":
		return decimal.Zero, errors.New("both income and expense cells populated")
	case in == "" && out == "":
		return decimal.Zero, errors.New("neither income nor expense cell populated")
	case in != "":
		amt, err := parseAmount(in)
		if err != nil {
			return decimal.Zero, err
		}
		return amt.Abs(), nil
	default:
		amt, err := parseAmount(out)
		if err != nil {
			return decimal.Zero, err
		}
		return amt.Abs().Neg(), nil
	}
}

// amountCleaner strips currency symbols and separators bank exports wrap
// around numbers.
var amountCleaner = strings.NewReplacer("£", "", "$", "", "€", "", ",", "", " ", "")

func parseAmount(cell string) (decimal.Decimal, error) {
	s := strings.TrimSpace(amountCleaner.Replace(cell))
	amt, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", strings.TrimSpace(cell), err)
	}
	return amt, nil
}
