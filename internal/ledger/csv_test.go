package ledger

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booked-dev/booked/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestRoundTrip(t *testing.T) {
	records := []model.Record{
		{
			ID:          "2025-06-001",
			Date:        date(2025, 6, 15),
			Description: "Client Payment",
			Amount:      dec("1500.00"),
			Category:    "Sales",
			Source:      "hsbc_current.csv",
			Notes:       "invoice 1042",
		},
		{
			ID:          "2025-06-002",
			Date:        date(2025, 6, 16),
			Description: "Office Supplies",
			Amount:      dec("-45.99"),
			Category:    "Office costs",
			Source:      "hsbc_current.csv",
			Notes:       "",
		},
	}

	var buf bytes.Buffer
	err := WriteRecords(&buf, records)
	require.NoError(t, err)

	// Verify header is present.
	assert.True(t, strings.HasPrefix(buf.String(), "record_id,"))

	got, err := ReadRecords(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i := range records {
		assert.Equal(t, records[i].ID, got[i].ID)
		assert.True(t, records[i].Date.Equal(got[i].Date))
		assert.Equal(t, records[i].Description, got[i].Description)
		assert.True(t, records[i].Amount.Equal(got[i].Amount), "amount mismatch row %d", i)
		assert.Equal(t, records[i].Category, got[i].Category)
		assert.Equal(t, records[i].Source, got[i].Source)
		assert.Equal(t, records[i].Notes, got[i].Notes)
	}
}

func TestNegativeAmounts(t *testing.T) {
	rec := model.Record{
		ID:          "2025-06-001",
		Date:        date(2025, 6, 3),
		Description: "AWS",
		Amount:      dec("-120.5"),
	}

	row := MarshalRecord(rec)
	assert.Equal(t, "-120.50", row[colAmount], "StringFixed(2) should preserve trailing zero")

	got, err := UnmarshalRecord(row)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(dec("-120.50")), "amount: got %s", got.Amount)
	assert.True(t, got.Amount.IsNegative())
}

func TestEmptyOptionalFields(t *testing.T) {
	rec := model.Record{
		ID:          "2025-06-001",
		Date:        date(2025, 6, 10),
		Description: "COSTA COFFEE",
		Amount:      dec("-4.50"),
	}

	row := MarshalRecord(rec)
	got, err := UnmarshalRecord(row)
	require.NoError(t, err)
	assert.Empty(t, got.Category)
	assert.Empty(t, got.Source)
	assert.Empty(t, got.Notes)
}

func TestSpecialCharactersInDescription(t *testing.T) {
	rec := model.Record{
		ID:          "2025-06-001",
		Date:        date(2025, 6, 15),
		Description: `ACME CONSULTING, "Invoice 1042" & more`,
		Amount:      dec("3500.00"),
	}

	var buf bytes.Buffer
	err := WriteRecords(&buf, []model.Record{rec})
	require.NoError(t, err)

	got, err := ReadRecords(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.Description, got[0].Description)
}

func TestAppendRecords(t *testing.T) {
	var buf bytes.Buffer

	// Write initial records with header.
	initial := []model.Record{
		{
			ID:          "2025-06-001",
			Date:        date(2025, 6, 3),
			Description: "First",
			Amount:      dec("4.00"),
		},
	}
	err := WriteRecords(&buf, initial)
	require.NoError(t, err)

	// Append more records (no header).
	extra := []model.Record{
		{
			ID:          "2025-06-002",
			Date:        date(2025, 6, 5),
			Description: "Second",
			Amount:      dec("127.50"),
		},
	}
	err = AppendRecords(&buf, extra)
	require.NoError(t, err)

	got, err := ReadRecords(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-06-001", got[0].ID)
	assert.Equal(t, "2025-06-002", got[1].ID)
}

func TestReadRecords_Empty(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestReadRecords_HeaderOnly(t *testing.T) {
	records, err := ReadRecords(strings.NewReader(Header + "\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadRecords_BadDate(t *testing.T) {
	in := Header + "\n2025-06-001,15/06/2025,Client Payment,1500.00,Sales,,\n"
	_, err := ReadRecords(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "parsing date")
}

func TestReadRecords_BadAmount(t *testing.T) {
	in := Header + "\n2025-06-001,2025-06-15,Client Payment,lots,Sales,,\n"
	_, err := ReadRecords(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestReadTestdata(t *testing.T) {
	f, err := os.Open("../../testdata/ledger.csv")
	require.NoError(t, err)
	defer f.Close()

	records, err := ReadRecords(f)
	require.NoError(t, err)
	require.Len(t, records, 4)

	// Verify all records have required fields.
	for i, rec := range records {
		assert.NotEmpty(t, rec.ID, "record %d missing record_id", i)
		assert.False(t, rec.Date.IsZero(), "record %d missing date", i)
		assert.NotEmpty(t, rec.Description, "record %d missing description", i)
		assert.False(t, rec.Amount.IsZero(), "record %d has zero amount", i)
	}
}

func TestDecimalPrecision(t *testing.T) {
	// Verify decimal arithmetic survives a CSV round-trip. This is the
	// core guarantee of using shopspring/decimal over float64.
	rec := model.Record{
		ID:          "2025-06-001",
		Date:        date(2025, 6, 10),
		Description: "Precision",
		Amount:      dec("0.1").Add(dec("0.2")),
	}
	row := MarshalRecord(rec)
	got, err := UnmarshalRecord(row)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(dec("0.30")), "0.1+0.2 should equal 0.30 exactly, got %s", got.Amount)
}

func TestStringFixed2Formatting(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"4.00", "4.00"},
		{"127.5", "127.50"},
		{"3500", "3500.00"},
		{"-45.99", "-45.99"},
		{"0.10", "0.10"},
	}
	for _, tt := range tests {
		rec := model.Record{
			ID:          "2025-06-001",
			Date:        date(2025, 6, 1),
			Description: "x",
			Amount:      dec(tt.input),
		}
		row := MarshalRecord(rec)
		assert.Equal(t, tt.want, row[colAmount], "input %q", tt.input)
	}
}
