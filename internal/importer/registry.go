package importer

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// FormatCSV is the format identifier of the built-in CSV parser.
const FormatCSV = "csv"

// PriorityBuiltin is the reserved priority band for built-in parsers.
// External parsers register above it to take precedence or below it to act
// as fallbacks.
const PriorityBuiltin = 100

// Parser turns a statement file into normalized transactions.
type Parser interface {
	// FormatID is the stable format identifier, e.g. "csv".
	FormatID() string
	// Name is the importer name shown to users.
	Name() string
	// Extensions lists the file extensions the parser claims, with leading dot.
	Extensions() []string
	// Banks lists the bank presets the parser can pre-configure, in display order.
	Banks() []BankFormat
	// Parse consumes a request and normalizes its rows. Row-level problems
	// are collected in the result; configuration problems are the error
	// return.
	Parse(req ParseRequest) (*ParseResult, error)
	// Preview samples up to limit rows from the head of the file without a
	// mapping. It never fails; unreadable input yields a partial or empty
	// preview.
	Preview(r io.Reader, limit int) Preview
}

// ErrNoParser reports that no registered parser claims a format.
var ErrNoParser = errors.New("no parser available")

type registration struct {
	parser   Parser
	priority int
}

// Registry resolves format identifiers to parsers. Construct one per
// coordinator; there is no shared global instance.
type Registry struct {
	regs []registration
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a parser at the given priority. When several parsers claim
// the same format the highest priority wins; equal priorities resolve in
// registration order.
func (r *Registry) Register(p Parser, priority int) {
	r.regs = append(r.regs, registration{parser: p, priority: priority})
}

// Select returns the winning parser for a format identifier.
func (r *Registry) Select(formatID string) (Parser, error) {
	if formatID == "" {
		return nil, fmt.Errorf("no format detected: %w", ErrNoParser)
	}

	id := strings.ToLower(formatID)
	best := -1
	for i, reg := range r.regs {
		if strings.ToLower(reg.parser.FormatID()) != id {
			continue
		}
		if best == -1 || reg.priority > r.regs[best].priority {
			best = i
		}
	}
	if best == -1 {
		return nil, fmt.Errorf("format %q: %w", formatID, ErrNoParser)
	}
	return r.regs[best].parser, nil
}

// DetectFormat maps a file's extension, case-insensitively, to a registered
// format identifier. Empty or extensionless paths yield no match, never an
// error.
func (r *Registry) DetectFormat(path string) (string, bool) {
	if path == "" {
		return "", false
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return "", false
	}
	for _, reg := range r.regs {
		for _, e := range reg.parser.Extensions() {
			if strings.ToLower(e) == ext {
				return reg.parser.FormatID(), true
			}
		}
	}
	return "", false
}

// SniffFormat guesses a format from the head of a file when the extension is
// unhelpful. Only CSV-shaped text is recognized.
func SniffFormat(head []byte) (string, bool) {
	if looksLikeCSV(head) {
		return FormatCSV, true
	}
	return "", false
}

func looksLikeCSV(head []byte) bool {
	if len(head) == 0 {
		return false
	}
	if !strings.HasPrefix(http.DetectContentType(head), "text/") {
		return false
	}
	line, _, _ := strings.Cut(string(head), "\n")
	return strings.Count(line, ",") >= 1
}

// DefaultRegistry returns a registry with the built-in parsers registered in
// their reserved band.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(NewCSVParser(), PriorityBuiltin)
	return r
}
