package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/booked-dev/booked/internal/categories"
	"github.com/booked-dev/booked/internal/categorize"
	"github.com/booked-dev/booked/internal/config"
	"github.com/booked-dev/booked/internal/gitops"
	"github.com/booked-dev/booked/internal/importer"
	"github.com/booked-dev/booked/internal/importlog"
	"github.com/booked-dev/booked/internal/ledger"
	"github.com/booked-dev/booked/internal/model"
	"github.com/booked-dev/booked/internal/reconcile"
)

type importOptions struct {
	bank       string
	dateFormat string
	dateCol    string
	descCol    string
	amountCol  string
	incomeCol  string
	expenseCol string
	category   string
	duplicates string
	dryRun     bool
	verbose    bool
}

func newImportCommand() *cobra.Command {
	var booksDir string
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a bank statement into the ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.duplicates != "import" && opts.duplicates != "skip" {
				return fmt.Errorf("invalid --duplicates value %q (want import or skip)", opts.duplicates)
			}

			absDir, err := filepath.Abs(booksDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			return runImport(absDir, file, opts)
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books directory")
	cmd.Flags().StringVar(&opts.bank, "bank", "", "bank preset (see booked banks)")
	cmd.Flags().StringVar(&opts.dateFormat, "date-format", "dd/MM/yyyy", "statement date format")
	cmd.Flags().StringVar(&opts.dateCol, "date-column", "", "date column header")
	cmd.Flags().StringVar(&opts.descCol, "description-column", "", "description column header")
	cmd.Flags().StringVar(&opts.amountCol, "amount-column", "", "signed amount column header")
	cmd.Flags().StringVar(&opts.incomeCol, "income-column", "", "income column header (paired with --expense-column)")
	cmd.Flags().StringVar(&opts.expenseCol, "expense-column", "", "expense column header (paired with --income-column)")
	cmd.Flags().StringVar(&opts.category, "category", "", "category for imported records")
	cmd.Flags().StringVar(&opts.duplicates, "duplicates", "import", "likely-duplicate handling: import or skip")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "classify and print without touching the ledger")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	return cmd
}

func runImport(booksDir, file string, opts importOptions) error {
	cfg, err := config.Load(filepath.Join(booksDir, "books.yaml"))
	if err != nil {
		return fmt.Errorf("not a books directory (run booked init): %w", err)
	}

	catSvc, err := categories.Load(booksDir)
	if err != nil {
		return err
	}

	category := opts.category
	if category == "" {
		category = cfg.Import.DefaultCategory
	}
	if category != "" && !catSvc.Exists(category) {
		return fmt.Errorf("unknown category %q (see categories/categories.csv)", category)
	}

	mapping, err := resolveMapping(cfg, opts)
	if err != nil {
		return err
	}

	logger := log.New(os.Stderr)
	if opts.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	ledgerSvc := ledger.NewService(booksDir, catSvc)
	registry := importer.DefaultRegistry()

	history, err := ledgerSvc.AllRecords()
	if err != nil {
		return err
	}
	suggester := categorize.NewSuggester(history)

	run := &importRun{
		booksDir: booksDir,
		cfg:      cfg,
		coord:    reconcile.NewCoordinator(registry, ledgerSvc, suggester, logger),
		mapping:  mapping,
		category: category,
		opts:     opts,
	}

	if file != "" {
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("resolving statement path: %w", err)
		}
		inbox := filepath.Dir(abs) == filepath.Join(booksDir, "statements")
		return run.one(abs, inbox)
	}

	files, err := importer.Scan(booksDir, registry)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No statements waiting in %s\n", filepath.Join(booksDir, "statements"))
		return nil
	}
	for _, fi := range files {
		if err := run.one(fi.Path, true); err != nil {
			return err
		}
	}
	return nil
}

type importRun struct {
	booksDir string
	cfg      *config.Config
	coord    *reconcile.Coordinator
	mapping  importer.ColumnMapping
	category string
	opts     importOptions
}

func (r *importRun) one(path string, inbox bool) error {
	session, err := r.coord.Run(r.mapping.Request(path), reconcile.Options{Category: r.category})
	if err != nil {
		return err
	}

	if r.opts.duplicates == "skip" {
		for i := range session.Candidates {
			if session.Candidates[i].Match == model.MatchLikely {
				session.Candidates[i].Action = model.ActionSkip
			}
		}
	}

	printReview(session)

	if r.opts.dryRun {
		fmt.Println("Dry run: ledger not modified.")
		return nil
	}

	results := r.coord.Apply(session)
	applied, skipped, failed := countResults(results)

	if err := writeImportLog(r.booksDir, session, results); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write import log: %v\n", err)
	}

	if inbox && failed == 0 && len(session.RowErrors) == 0 {
		if err := importer.MarkProcessed(r.booksDir, filepath.Base(path)); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	if r.cfg.Git.AutoCommit && gitops.IsRepo(r.booksDir) && applied > 0 {
		msg := fmt.Sprintf("import: %s (%d records)", filepath.Base(path), applied)
		if hash, err := gitops.CommitAll(r.booksDir, msg, r.cfg.Git.AuthorName, r.cfg.Git.AuthorEmail); err != nil {
			fmt.Fprintf(os.Stderr, "warning: auto-commit failed: %v\n", err)
		} else {
			fmt.Printf("Committed %s\n", hash)
		}
	}

	fmt.Printf("Applied %d, skipped %d, failed %d of %d rows\n", applied, skipped, failed, len(results))
	return nil
}

// resolveMapping picks the column mapping for a run: explicit column flags
// win, then a configured account override, then the bank preset.
func resolveMapping(cfg *config.Config, opts importOptions) (importer.ColumnMapping, error) {
	custom := opts.dateCol != "" || opts.descCol != "" || opts.amountCol != "" ||
		opts.incomeCol != "" || opts.expenseCol != ""
	if custom {
		m := importer.ColumnMapping{
			DateColumn:        opts.dateCol,
			DescriptionColumn: opts.descCol,
			AmountColumn:      opts.amountCol,
			IncomeColumn:      opts.incomeCol,
			ExpenseColumn:     opts.expenseCol,
			DateFormat:        opts.dateFormat,
			Bank:              importer.BankFormat(opts.bank),
		}
		if err := m.Validate(); err != nil {
			return importer.ColumnMapping{}, fmt.Errorf("column mapping: %w", err)
		}
		return m, nil
	}

	if opts.bank == "" {
		return importer.ColumnMapping{}, errors.New("specify --bank or explicit column flags")
	}
	if acct, ok := cfg.AccountFor(opts.bank); ok {
		return acct.ColumnMapping()
	}
	return importer.BankFormat(opts.bank).Mapping()
}

var (
	exactBadge  = color.New(color.FgGreen).SprintFunc()
	likelyBadge = color.New(color.FgYellow).SprintFunc()
	newBadge    = color.New(color.FgCyan).SprintFunc()
	errorBadge  = color.New(color.FgRed).SprintFunc()
)

func matchBadge(m model.MatchType) string {
	switch m {
	case model.MatchExact:
		return exactBadge("EXACT ")
	case model.MatchLikely:
		return likelyBadge("LIKELY")
	default:
		return newBadge("NEW   ")
	}
}

func printReview(session *reconcile.Session) {
	fmt.Printf("%s: %d rows\n", filepath.Base(session.File), len(session.Candidates))

	for _, cand := range session.Candidates {
		line := fmt.Sprintf("%4d  %s  %s  %-32s  %10s  %-6s",
			cand.Transaction.Line,
			cand.Transaction.Date.Format("2006-01-02"),
			matchBadge(cand.Match),
			truncate(cand.Transaction.Description, 32),
			cand.Transaction.Amount.StringFixed(2),
			cand.Action)
		switch {
		case cand.Matched != nil:
			line += fmt.Sprintf("  matches %s (%.0f%%)", cand.Matched.ID, cand.Similarity*100)
		case cand.Category == "" && cand.SuggestedCategory != "":
			line += "  suggest " + cand.SuggestedCategory
		}
		fmt.Println(line)
	}

	for _, re := range session.RowErrors {
		fmt.Printf("%4d  %s\n", re.Row, errorBadge(re.Msg))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func countResults(results []reconcile.ApplyResult) (applied, skipped, failed int) {
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
		case res.Action == model.ActionSkip:
			skipped++
		default:
			applied++
		}
	}
	return applied, skipped, failed
}

func writeImportLog(booksDir string, session *reconcile.Session, results []reconcile.ApplyResult) error {
	if len(results) == 0 {
		return nil
	}

	now := time.Now().UTC()
	entries := make([]importlog.Entry, 0, len(results))
	for i, res := range results {
		cand := session.Candidates[i]
		detail := fmt.Sprintf("%s %s", cand.Transaction.Description, cand.Transaction.Amount.StringFixed(2))
		if res.Err != nil {
			detail = res.Err.Error()
		}
		entries = append(entries, importlog.Entry{
			Timestamp: now,
			SessionID: session.ID.String(),
			File:      filepath.Base(session.File),
			Bank:      string(session.Bank),
			Row:       res.Row,
			Action:    string(res.Action),
			Match:     string(cand.Match),
			RecordID:  res.RecordID,
			Detail:    detail,
		})
	}
	return importlog.Append(booksDir, entries)
}
