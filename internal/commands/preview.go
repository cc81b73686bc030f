package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/booked-dev/booked/internal/importer"
)

func newPreviewCommand() *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Show the head of a statement file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(args[0], rows)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 10, "rows to show")

	return cmd
}

func runPreview(path string, rows int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()

	p := importer.NewCSVParser().Preview(f, rows)
	if len(p.Headers) == 0 && len(p.Rows) == 0 {
		fmt.Println("No rows to show.")
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	if len(p.Headers) > 0 {
		fmt.Println(bold(strings.Join(p.Headers, " | ")))
	}
	for _, row := range p.Rows {
		fmt.Println(strings.Join(row, " | "))
	}
	return nil
}
