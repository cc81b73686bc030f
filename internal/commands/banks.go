package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/booked-dev/booked/internal/importer"
)

func newBanksCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List built-in bank statement presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBanks()
		},
	}
}

func runBanks() error {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Println(bold(fmt.Sprintf("%-12s %-18s %-26s %-24s %s",
		"BANK", "DATE", "DESCRIPTION", "AMOUNT", "FORMAT")))

	for _, bank := range importer.BuiltinBanks() {
		m, err := bank.Mapping()
		if err != nil {
			return err
		}

		amount := m.AmountColumn
		if m.Split() {
			amount = m.IncomeColumn + " / " + m.ExpenseColumn
		}
		fmt.Printf("%-12s %-18s %-26s %-24s %s\n",
			bank, m.DateColumn, m.DescriptionColumn, amount, m.DateFormat)
	}
	return nil
}
