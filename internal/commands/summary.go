package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/booked-dev/booked/internal/categories"
	"github.com/booked-dev/booked/internal/config"
	"github.com/booked-dev/booked/internal/ledger"
)

func newSummaryCommand() *cobra.Command {
	var booksDir string
	var year int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Fiscal year totals by category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(booksDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runSummary(absDir, year)
		},
	}

	cmd.Flags().StringVar(&booksDir, "books", ".", "books directory")
	cmd.Flags().IntVar(&year, "year", 0, "fiscal year starting in this calendar year (default: current)")

	return cmd
}

func runSummary(booksDir string, year int) error {
	cfg, err := config.Load(filepath.Join(booksDir, "books.yaml"))
	if err != nil {
		return fmt.Errorf("not a books directory (run booked init): %w", err)
	}

	catSvc, err := categories.Load(booksDir)
	if err != nil {
		return err
	}

	if year == 0 {
		year = fiscalYearFor(time.Now(), cfg.Fiscal)
	}
	from, to, err := cfg.Fiscal.YearRange(year)
	if err != nil {
		return err
	}

	svc := ledger.NewService(booksDir, catSvc)
	records, err := svc.FindRange(from, to)
	if err != nil {
		return err
	}

	totals := make(map[string]decimal.Decimal)
	var income, expenses decimal.Decimal
	for _, rec := range records {
		name := rec.Category
		if name == "" {
			name = "(uncategorized)"
		}
		totals[name] = totals[name].Add(rec.Amount)
		if rec.Amount.IsPositive() {
			income = income.Add(rec.Amount)
		} else {
			expenses = expenses.Add(rec.Amount)
		}
	}

	fmt.Printf("Fiscal year %s to %s: %d records\n\n",
		from.Format("2006-01-02"), to.Format("2006-01-02"), len(records))

	// Chart order first, uncategorized last.
	for _, cat := range catSvc.All() {
		total, ok := totals[cat.Name]
		if !ok {
			continue
		}
		fmt.Printf("%-22s %12s   %s\n", cat.Name, total.StringFixed(2), cat.TaxBox)
	}
	if total, ok := totals["(uncategorized)"]; ok {
		fmt.Printf("%-22s %12s\n", "(uncategorized)", total.StringFixed(2))
	}

	bold := color.New(color.Bold).SprintFunc()
	fmt.Println()
	fmt.Printf("%-22s %12s\n", "Income", income.StringFixed(2))
	fmt.Printf("%-22s %12s\n", "Expenses", expenses.StringFixed(2))
	fmt.Println(bold(fmt.Sprintf("%-22s %12s", "Profit", income.Add(expenses).StringFixed(2))))
	return nil
}

// fiscalYearFor returns the fiscal year containing the given day.
func fiscalYearFor(now time.Time, f config.FiscalConfig) int {
	from, _, err := f.YearRange(now.Year())
	if err != nil {
		return now.Year()
	}
	if now.Before(from) {
		return now.Year() - 1
	}
	return now.Year()
}
