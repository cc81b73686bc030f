package reconcile

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/booked-dev/booked/internal/importer"
	"github.com/booked-dev/booked/internal/model"
)

// Store is the ledger surface the coordinator needs. *ledger.Service
// satisfies it.
type Store interface {
	FindRange(from, to time.Time) ([]model.Record, error)
	Create(rec model.Record) (string, error)
	Update(recordID string, fields model.RecordFields) error
}

// Suggester proposes a category for a statement description. Suggestions
// are advisory display information and never feed classification.
type Suggester interface {
	Suggest(description string) string
}

// Options tune a single coordinator run.
type Options struct {
	// Category is the category candidates would be filed under. May be
	// empty; it is compared literally when classifying.
	Category string
	// FormatID forces a parser format instead of detecting one from the
	// file.
	FormatID string
}

// Coordinator drives one statement through parse, classify and apply.
type Coordinator struct {
	registry  *importer.Registry
	store     Store
	suggester Suggester
	logger    *log.Logger
}

// NewCoordinator creates a Coordinator. suggester may be nil.
func NewCoordinator(registry *importer.Registry, store Store, suggester Suggester, logger *log.Logger) *Coordinator {
	return &Coordinator{registry: registry, store: store, suggester: suggester, logger: logger}
}

// Run parses a statement and classifies every row against the ledger
// records overlapping the statement's date range. Candidates come back in
// statement order carrying their default actions; the ledger is not
// modified.
func (c *Coordinator) Run(req importer.ParseRequest, opts Options) (*Session, error) {
	formatID := opts.FormatID
	if formatID == "" {
		formatID = c.detectFormat(req.Path)
	}

	parser, err := c.registry.Select(formatID)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("parsing statement", "file", req.Path, "format", parser.FormatID())
	result, err := parser.Parse(req)
	if err != nil {
		return nil, err
	}

	var existing []model.Record
	if len(result.Transactions) > 0 {
		from, to := dateRange(result.Transactions)
		existing, err = c.store.FindRange(from, to)
		if err != nil {
			return nil, fmt.Errorf("loading ledger records: %w", err)
		}
	}

	session := BuildSession(req.Path, result, existing, opts.Category)
	session.Bank = req.Mapping.Bank
	if c.suggester != nil {
		for i := range session.Candidates {
			session.Candidates[i].SuggestedCategory = c.suggester.Suggest(session.Candidates[i].Transaction.Description)
		}
	}

	newCount, likely, exact := session.Counts()
	c.logger.Debug("classified statement",
		"session", session.ID,
		"rows", len(session.Candidates),
		"new", newCount,
		"likely", likely,
		"exact", exact,
		"row_errors", len(result.Errors))

	return session, nil
}

// ApplyResult reports the outcome of applying one candidate.
type ApplyResult struct {
	Row      int
	Action   model.ImportAction
	RecordID string
	Err      error
}

// Apply executes each candidate's resolved action in statement order. A
// failed candidate is reported in its result and the remaining candidates
// still apply.
func (c *Coordinator) Apply(session *Session) []ApplyResult {
	results := make([]ApplyResult, 0, len(session.Candidates))
	for _, cand := range session.Candidates {
		res := ApplyResult{Row: cand.Transaction.Line, Action: cand.Action}

		switch cand.Action {
		case model.ActionSkip:
			// Duplicate stays in the ledger untouched.
		case model.ActionImport:
			res.RecordID, res.Err = c.store.Create(model.Record{
				Date:        cand.Transaction.Date,
				Description: cand.Transaction.Description,
				Amount:      cand.Transaction.Amount,
				Category:    cand.Category,
				Source:      filepath.Base(session.File),
			})
		case model.ActionUpdate:
			if cand.Matched == nil {
				res.Err = fmt.Errorf("row %d: update action without a matched record", cand.Transaction.Line)
				break
			}
			res.RecordID = cand.Matched.ID
			res.Err = c.store.Update(cand.Matched.ID, model.RecordFields{
				Date:        cand.Transaction.Date,
				Description: cand.Transaction.Description,
				Amount:      cand.Transaction.Amount,
				Category:    cand.Category,
			})
		default:
			res.Err = fmt.Errorf("row %d: unknown action %q", cand.Transaction.Line, cand.Action)
		}

		if res.Err != nil {
			c.logger.Error("apply failed", "session", session.ID, "row", res.Row, "action", res.Action, "err", res.Err)
		}
		results = append(results, res)
	}
	return results
}

// detectFormat resolves a format from the file extension, falling back to
// sniffing the head of the file when the extension is unhelpful.
func (c *Coordinator) detectFormat(path string) string {
	if formatID, ok := c.registry.DetectFormat(path); ok {
		return formatID
	}
	head, err := readHead(path)
	if err != nil {
		return ""
	}
	formatID, _ := importer.SniffFormat(head)
	return formatID
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := f.Read(head)
	if n == 0 && err != nil {
		return nil, err
	}
	return head[:n], nil
}

func dateRange(txns []model.StatementTransaction) (from, to time.Time) {
	from, to = txns[0].Date, txns[0].Date
	for _, t := range txns[1:] {
		if t.Date.Before(from) {
			from = t.Date
		}
		if t.Date.After(to) {
			to = t.Date
		}
	}
	return from, to
}
