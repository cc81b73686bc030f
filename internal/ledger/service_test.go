package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/booked-dev/booked/internal/model"
)

func TestCreate_NewMonth(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultCategories)

	recordID, err := svc.Create(model.Record{
		Date:        date(2025, 6, 15),
		Description: "Client Payment",
		Amount:      dec("1500.00"),
		Category:    "Sales",
		Source:      "hsbc_current.csv",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-001", recordID)

	// Verify file was created.
	path := filepath.Join(dir, "2025", "06", "ledger.csv")
	_, err = os.Stat(path)
	require.NoError(t, err)

	records, err := svc.ReadMonth(2025, 6)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-06-001", records[0].ID)
	assert.True(t, records[0].Amount.Equal(dec("1500.00")))
}

func TestCreate_ExistingMonth(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultCategories)

	_, err := svc.Create(model.Record{
		Date:        date(2025, 6, 10),
		Description: "First",
		Amount:      dec("10.00"),
		Category:    "Sales",
	})
	require.NoError(t, err)

	recordID, err := svc.Create(model.Record{
		Date:        date(2025, 6, 20),
		Description: "Second",
		Amount:      dec("-20.00"),
		Category:    "Office costs",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-002", recordID)

	records, err := svc.ReadMonth(2025, 6)
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestCreate_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultCategories)

	_, err := svc.Create(model.Record{
		Date:        date(2025, 6, 15),
		Description: "Bad record",
		Amount:      dec("50.00"),
		Category:    "Gambling", // not in the chart
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	// Verify nothing was written.
	records, err := svc.ReadMonth(2025, 6)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCreate_UncategorizedAllowed(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultCategories)

	recordID, err := svc.Create(model.Record{
		Date:        date(2025, 6, 15),
		Description: "COSTA COFFEE",
		Amount:      dec("-4.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-06-001", recordID)
}

func TestCreate_DirectoryCreation(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultCategories)

	_, err := svc.Create(model.Record{
		Date:        date(2025, 12, 25),
		Description: "December record",
		Amount:      dec("25.00"),
		Category:    "Sales",
	})
	require.NoError(t, err)

	// Verify directory structure was created.
	ledgerDir := filepath.Join(dir, "2025", "12")
	info, err := os.Stat(ledgerDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestUpdate(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultCategories)

	recordID, err := svc.Create(model.Record{
		Date:        date(2025, 6, 15),
		Description: "Client Payment",
		Amount:      dec("1500.00"),
		Source:      "hsbc_current.csv",
	})
	require.NoError(t, err)

	err = svc.Update(recordID, model.RecordFields{
		Date:        date(2025, 6, 15),
		Description: "Client Payment (invoice 1042)",
		Amount:      dec("1500.00"),
		Category:    "Sales",
	})
	require.NoError(t, err)

	records, err := svc.ReadMonth(2025, 6)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, recordID, records[0].ID)
	assert.Equal(t, "Client Payment (invoice 1042)", records[0].Description)
	assert.Equal(t, "Sales", records[0].Category)
	assert.Equal(t, "hsbc_current.csv", records[0].Source, "source survives updates")
}

func TestUpdate_NotFound(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultCategories)

	err := svc.Update("2025-06-007", model.RecordFields{
		Date:        date(2025, 6, 15),
		Description: "x",
		Amount:      dec("1.00"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdate_ValidationFailure(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultCategories)

	recordID, err := svc.Create(model.Record{
		Date:        date(2025, 6, 15),
		Description: "Client Payment",
		Amount:      dec("1500.00"),
	})
	require.NoError(t, err)

	err = svc.Update(recordID, model.RecordFields{
		Date:        date(2025, 6, 15),
		Description: "Client Payment",
		Amount:      dec("1500.00"),
		Category:    "Gambling",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	// Original record unchanged on disk.
	records, err := svc.ReadMonth(2025, 6)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Category)
}

func TestUpdate_CrossMonthRejected(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultCategories)

	recordID, err := svc.Create(model.Record{
		Date:        date(2025, 6, 15),
		Description: "Client Payment",
		Amount:      dec("1500.00"),
	})
	require.NoError(t, err)

	// Moving a record out of its month would orphan its ID.
	err = svc.Update(recordID, model.RecordFields{
		Date:        date(2025, 7, 1),
		Description: "Client Payment",
		Amount:      dec("1500.00"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestFindRange_SpansMonths(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultCategories)

	for _, rec := range []model.Record{
		{Date: date(2025, 6, 10), Description: "June early", Amount: dec("1.00")},
		{Date: date(2025, 6, 25), Description: "June late", Amount: dec("2.00")},
		{Date: date(2025, 7, 5), Description: "July early", Amount: dec("3.00")},
		{Date: date(2025, 7, 20), Description: "July late", Amount: dec("4.00")},
	} {
		_, err := svc.Create(rec)
		require.NoError(t, err)
	}

	got, err := svc.FindRange(date(2025, 6, 20), date(2025, 7, 10))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "June late", got[0].Description)
	assert.Equal(t, "July early", got[1].Description)
}

func TestFindRange_InclusiveBounds(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultCategories)

	_, err := svc.Create(model.Record{Date: date(2025, 6, 15), Description: "on the day", Amount: dec("1.00")})
	require.NoError(t, err)

	got, err := svc.FindRange(date(2025, 6, 15), date(2025, 6, 15))
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestAllRecords(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultCategories)

	for _, rec := range []model.Record{
		{Date: date(2024, 12, 31), Description: "Last year", Amount: dec("1.00")},
		{Date: date(2025, 6, 10), Description: "June", Amount: dec("2.00")},
		{Date: date(2025, 7, 5), Description: "July", Amount: dec("3.00")},
	} {
		_, err := svc.Create(rec)
		require.NoError(t, err)
	}

	got, err := svc.AllRecords()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Last year", got[0].Description)
	assert.Equal(t, "June", got[1].Description)
	assert.Equal(t, "July", got[2].Description)
}

func TestAllRecords_Empty(t *testing.T) {
	svc := NewService(t.TempDir(), defaultCategories)

	got, err := svc.AllRecords()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindRange_Empty(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultCategories)

	got, err := svc.FindRange(date(2025, 1, 1), date(2025, 3, 31))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestNextSeq(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultCategories)

	// Empty month, seq should be 1.
	seq, err := svc.NextSeq(2025, 6)
	require.NoError(t, err)
	assert.Equal(t, 1, seq)

	_, err = svc.Create(model.Record{Date: date(2025, 6, 1), Description: "First", Amount: dec("1.00")})
	require.NoError(t, err)

	seq, err = svc.NextSeq(2025, 6)
	require.NoError(t, err)
	assert.Equal(t, 2, seq)
}

func TestReadMonth_NonExistent(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultCategories)

	records, err := svc.ReadMonth(2025, 6)
	require.NoError(t, err)
	assert.Empty(t, records)
}
