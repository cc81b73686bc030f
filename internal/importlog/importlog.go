package importlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the import log: what happened to one statement row
// during an import session.
type Entry struct {
	Timestamp time.Time
	SessionID string
	File      string
	Bank      string
	Row       int
	Action    string
	Match     string
	RecordID  string
	Detail    string
}

// Header is the CSV header for imports.csv.
const Header = "timestamp,session_id,file,bank,row,action,match,record_id,detail"

const (
	numFields    = 9
	logDir       = "logs"
	logFile      = "logs/imports.csv"
	colTimestamp = 0
	colSessionID = 1
	colFile      = 2
	colBank      = 3
	colRow       = 4
	colAction    = 5
	colMatch     = 6
	colRecordID  = 7
	colDetail    = 8
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colSessionID] = e.SessionID
	row[colFile] = e.File
	row[colBank] = e.Bank
	row[colRow] = strconv.Itoa(e.Row)
	row[colAction] = e.Action
	row[colMatch] = e.Match
	row[colRecordID] = e.RecordID
	row[colDetail] = e.Detail
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	row, err := strconv.Atoi(record[colRow])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing row %q: %w", record[colRow], err)
	}

	return Entry{
		Timestamp: ts,
		SessionID: record[colSessionID],
		File:      record[colFile],
		Bank:      record[colBank],
		Row:       row,
		Action:    record[colAction],
		Match:     record[colMatch],
		RecordID:  record[colRecordID],
		Detail:    record[colDetail],
	}, nil
}

// Append writes entries to <booksDir>/logs/imports.csv, creating the file
// and header if needed.
func Append(booksDir string, entries []Entry) error {
	dir := filepath.Join(booksDir, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(booksDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}

	return cw.Error()
}

// Read returns all entries from <booksDir>/logs/imports.csv.
// Returns an empty slice if the file does not exist.
func Read(booksDir string) ([]Entry, error) {
	path := filepath.Join(booksDir, logFile)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening import log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading import log CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
