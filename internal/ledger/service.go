package ledger

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/booked-dev/booked/internal/id"
	"github.com/booked-dev/booked/internal/model"
)

// Service stores ledger records as monthly CSV files under the books
// directory: <booksDir>/YYYY/MM/ledger.csv.
type Service struct {
	booksDir   string
	categories CategoryChecker
}

// NewService creates a ledger Service.
func NewService(booksDir string, categories CategoryChecker) *Service {
	return &Service{booksDir: booksDir, categories: categories}
}

// Create validates the record against its month and appends it to the
// month's ledger.csv, assigning the next sequential ID. Returns the ID.
func (s *Service) Create(rec model.Record) (string, error) {
	year := rec.Date.Year()
	month := int(rec.Date.Month())

	seq, err := s.NextSeq(year, month)
	if err != nil {
		return "", err
	}
	rec.ID = id.FormatRecordID(year, month, seq)

	existing, err := s.ReadMonth(year, month)
	if err != nil {
		return "", err
	}

	all := append(existing, rec)
	if verrs := ValidateRecords(all, s.categories, year, month); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return "", fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	path := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return "", fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return "", fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendRecords(f, []model.Record{rec}); err != nil {
		return "", fmt.Errorf("appending record: %w", err)
	}

	return rec.ID, nil
}

// Update overwrites the mutable fields of an existing record and rewrites
// its month file. The record keeps its ID and Source.
func (s *Service) Update(recordID string, fields model.RecordFields) error {
	year, month, _, err := id.ParseRecordID(recordID)
	if err != nil {
		return err
	}

	records, err := s.ReadMonth(year, month)
	if err != nil {
		return err
	}

	found := -1
	for i := range records {
		if records[i].ID == recordID {
			found = i
			break
		}
	}
	if found == -1 {
		return fmt.Errorf("record %s not found in %04d/%02d", recordID, year, month)
	}

	records[found].Date = fields.Date
	records[found].Description = fields.Description
	records[found].Amount = fields.Amount
	records[found].Category = fields.Category

	if verrs := ValidateRecords(records, s.categories, year, month); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return fmt.Errorf("validation failed: %s", strings.Join(msgs, "; "))
	}

	var buf bytes.Buffer
	if err := WriteRecords(&buf, records); err != nil {
		return err
	}
	if err := os.WriteFile(s.monthPath(year, month), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("rewriting ledger: %w", err)
	}
	return nil
}

// FindRange returns records whose dates fall within [from, to] inclusive,
// walking every month the range touches. Records come back in file order,
// month by month.
func (s *Service) FindRange(from, to time.Time) ([]model.Record, error) {
	var out []model.Record

	cur := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(last) {
		records, err := s.ReadMonth(cur.Year(), int(cur.Month()))
		if err != nil {
			return nil, err
		}
		for _, rec := range records {
			if dayBefore(rec.Date, from) || dayBefore(to, rec.Date) {
				continue
			}
			out = append(out, rec)
		}
		cur = cur.AddDate(0, 1, 0)
	}
	return out, nil
}

// AllRecords reads every month's ledger file under the books directory, in
// chronological order.
func (s *Service) AllRecords() ([]model.Record, error) {
	pattern := filepath.Join(s.booksDir, "[0-9][0-9][0-9][0-9]", "[0-9][0-9]", "ledger.csv")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("scanning ledgers: %w", err)
	}

	// Glob output is sorted, so zero-padded year/month dirs come back in
	// chronological order.
	var out []model.Record
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening ledger %s: %w", path, err)
		}
		records, err := ReadRecords(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading ledger %s: %w", path, err)
		}
		out = append(out, records...)
	}
	return out, nil
}

// ReadMonth reads all records for a given year/month. A missing month file
// is an empty month, not an error.
func (s *Service) ReadMonth(year, month int) ([]model.Record, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return records, nil
}

// NextSeq returns the next available sequence number for a month.
func (s *Service) NextSeq(year, month int) (int, error) {
	records, err := s.ReadMonth(year, month)
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, rec := range records {
		_, _, seq, err := id.ParseRecordID(rec.ID)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1, nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.booksDir, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "ledger.csv")
}

// dayBefore reports whether a's calendar date is strictly before b's.
func dayBefore(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
