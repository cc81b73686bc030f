package categories

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/booked-dev/booked/internal/model"
)

const (
	numFields = 4
	colName   = 0
	colKind   = 1
	colTaxBox = 2
	colDesc   = 3
)

// ReadCategories reads categories.csv.
func ReadCategories(r io.Reader) ([]model.Category, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading categories CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var cats []model.Category
	for i, rec := range records[1:] {
		cat, err := UnmarshalCategory(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// WriteCategories writes categories.csv.
func WriteCategories(w io.Writer, cats []model.Category) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"name", "kind", "tax_box", "description"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, cat := range cats {
		if err := cw.Write(MarshalCategory(cat)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalCategory converts a Category to a CSV row.
func MarshalCategory(cat model.Category) []string {
	row := make([]string, numFields)
	row[colName] = cat.Name
	row[colKind] = string(cat.Kind)
	row[colTaxBox] = cat.TaxBox
	row[colDesc] = cat.Description
	return row
}

// UnmarshalCategory converts a CSV row to a Category.
func UnmarshalCategory(record []string) (model.Category, error) {
	if len(record) != numFields {
		return model.Category{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colName] == "" {
		return model.Category{}, fmt.Errorf("category name is empty")
	}

	kind := model.CategoryKind(record[colKind])
	if kind != model.KindIncome && kind != model.KindExpense {
		return model.Category{}, fmt.Errorf("unknown category kind %q", record[colKind])
	}

	return model.Category{
		Name:        record[colName],
		Kind:        kind,
		TaxBox:      record[colTaxBox],
		Description: record[colDesc],
	}, nil
}
