package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/booked-dev/booked/internal/importer"
)

// Config represents the top-level books.yaml configuration.
type Config struct {
	Business     BusinessConfig `yaml:"business"`
	Fiscal       FiscalConfig   `yaml:"fiscal"`
	Import       ImportConfig   `yaml:"import"`
	BankAccounts []BankAccount  `yaml:"bank_accounts,omitempty"`
	Git          GitConfig      `yaml:"git"`
}

// BusinessConfig identifies the sole trader.
type BusinessConfig struct {
	Name string `yaml:"name"`
	UTR  string `yaml:"utr,omitempty"` // Unique Taxpayer Reference
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format; UK tax year starts "04-06"
}

// ImportConfig holds statement import defaults.
type ImportConfig struct {
	DefaultCategory string `yaml:"default_category,omitempty"`
}

// BankAccount describes a bank feed. Bank names a built-in preset; Mapping,
// when present, overrides the preset's column layout.
type BankAccount struct {
	Name     string         `yaml:"name"`
	Bank     string         `yaml:"bank"`
	LastFour string         `yaml:"last_four,omitempty"`
	Mapping  *MappingConfig `yaml:"mapping,omitempty"`
}

// MappingConfig is a column mapping override declared in books.yaml.
type MappingConfig struct {
	DateColumn        string `yaml:"date_column"`
	DescriptionColumn string `yaml:"description_column"`
	AmountColumn      string `yaml:"amount_column,omitempty"`
	IncomeColumn      string `yaml:"income_column,omitempty"`
	ExpenseColumn     string `yaml:"expense_column,omitempty"`
	DateFormat        string `yaml:"date_format"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// ColumnMapping resolves the account's effective mapping: the declared
// override when present, else the bank preset.
func (b BankAccount) ColumnMapping() (importer.ColumnMapping, error) {
	if b.Mapping != nil {
		m := importer.ColumnMapping{
			DateColumn:        b.Mapping.DateColumn,
			DescriptionColumn: b.Mapping.DescriptionColumn,
			AmountColumn:      b.Mapping.AmountColumn,
			IncomeColumn:      b.Mapping.IncomeColumn,
			ExpenseColumn:     b.Mapping.ExpenseColumn,
			DateFormat:        b.Mapping.DateFormat,
			Bank:              importer.BankFormat(b.Bank),
		}
		if err := m.Validate(); err != nil {
			return importer.ColumnMapping{}, fmt.Errorf("account %q: %w", b.Name, err)
		}
		return m, nil
	}
	return importer.BankFormat(b.Bank).Mapping()
}

// AccountFor returns the configured bank account for a preset name, if any.
func (c *Config) AccountFor(bank string) (BankAccount, bool) {
	for _, acct := range c.BankAccounts {
		if acct.Bank == bank {
			return acct, true
		}
	}
	return BankAccount{}, false
}

// YearRange returns the fiscal year starting in the given calendar year.
// With the UK default "04-06", YearRange(2025) spans 2025-04-06 through
// 2026-04-05 inclusive.
func (f FiscalConfig) YearRange(year int) (time.Time, time.Time, error) {
	start, err := time.Parse("01-02", f.YearStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parsing fiscal year start %q: %w", f.YearStart, err)
	}
	from := time.Date(year, start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, -1)
	return from, to, nil
}

// Load reads a books.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new set of books.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name: businessName,
		},
		Fiscal: FiscalConfig{
			YearStart: "04-06",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Booked",
			AuthorEmail: "books@booked.dev",
		},
	}
}
