package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/booked-dev/booked/internal/categories"
	"github.com/booked-dev/booked/internal/config"
	"github.com/booked-dev/booked/internal/gitops"
	"github.com/booked-dev/booked/internal/importer"
)

func newInitCommand() *cobra.Command {
	var name string
	var banks []string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new set of books",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, banks)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringSliceVar(&banks, "bank", nil, "bank account preset to register (repeatable)")

	return cmd
}

func runInit(dir, name string, banks []string) error {
	// Create directory structure.
	dirs := []string{
		"categories",
		"logs",
		"statements",
		filepath.Join("statements", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write books.yaml.
	cfg := config.Default(name)
	for _, bank := range banks {
		if _, err := importer.BankFormat(bank).Mapping(); err != nil {
			return fmt.Errorf("registering bank account: %w", err)
		}
		cfg.BankAccounts = append(cfg.BankAccounts, config.BankAccount{Name: bank, Bank: bank})
	}
	if err := config.Save(filepath.Join(dir, "books.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write the default chart of categories.
	svc := categories.NewService(categories.DefaultCategories())
	if err := svc.Save(dir); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}

	// Write .gitignore.
	gitignore := "exports/\n.booked-cache/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	// Keep the empty inbox dirs in git.
	for _, d := range []string{"statements", filepath.Join("statements", "processed")} {
		if err := os.WriteFile(filepath.Join(dir, d, ".gitkeep"), []byte{}, 0o644); err != nil {
			return fmt.Errorf("writing .gitkeep: %w", err)
		}
	}

	// Initialize git and create initial commit.
	if err := gitops.Init(dir); err != nil {
		return fmt.Errorf("git init: %w", err)
	}

	hash, err := gitops.CommitAll(dir, "init: "+name, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Printf("Initialized books for %s at %s (%s)\n", name, dir, hash)
	return nil
}
