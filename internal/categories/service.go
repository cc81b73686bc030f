package categories

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/booked-dev/booked/internal/model"
)

// Service provides in-memory lookup over the chart of categories.
type Service struct {
	cats   []model.Category
	byName map[string]model.Category
}

// NewService creates a Service from a slice of categories.
func NewService(cats []model.Category) *Service {
	byName := make(map[string]model.Category, len(cats))
	for _, c := range cats {
		byName[c.Name] = c
	}
	return &Service{cats: cats, byName: byName}
}

// Load reads categories.csv from a books directory and returns a Service.
func Load(booksDir string) (*Service, error) {
	path := filepath.Join(booksDir, "categories", "categories.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening categories: %w", err)
	}
	defer f.Close()

	cats, err := ReadCategories(f)
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}
	return NewService(cats), nil
}

// All returns all categories.
func (s *Service) All() []model.Category {
	return s.cats
}

// Get returns a category by name.
func (s *Service) Get(name string) (model.Category, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// Exists reports whether a category name exists.
func (s *Service) Exists(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// ByKind returns all categories of the given kind.
func (s *Service) ByKind(kind model.CategoryKind) []model.Category {
	var result []model.Category
	for _, c := range s.cats {
		if c.Kind == kind {
			result = append(result, c)
		}
	}
	return result
}

// Save writes the chart of categories to categories/categories.csv.
func (s *Service) Save(booksDir string) error {
	dir := filepath.Join(booksDir, "categories")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating categories dir: %w", err)
	}

	path := filepath.Join(dir, "categories.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating categories file: %w", err)
	}
	defer f.Close()

	if err := WriteCategories(f, s.cats); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}
	return nil
}
