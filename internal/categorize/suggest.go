package categorize

import (
	"sort"
	"strings"

	"github.com/jbrukh/bayesian"

	"github.com/booked-dev/booked/internal/model"
)

// Suggester guesses a category for a statement description from the
// categorized records already in the ledger.
type Suggester struct {
	classes []bayesian.Class
	cl      *bayesian.Classifier
}

// NewSuggester trains a tf-idf naive Bayes classifier on categorized
// records. Returns nil when the records hold fewer than two distinct
// categories; the classifier needs at least two classes to discriminate.
func NewSuggester(records []model.Record) *Suggester {
	seen := make(map[string]bool)
	for _, rec := range records {
		if rec.Category != "" {
			seen[rec.Category] = true
		}
	}
	if len(seen) < 2 {
		return nil
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	classes := make([]bayesian.Class, 0, len(names))
	for _, name := range names {
		classes = append(classes, bayesian.Class(name))
	}

	cl := bayesian.NewClassifierTfIdf(classes...)
	for _, rec := range records {
		if rec.Category == "" {
			continue
		}
		cl.Learn(tokens(rec.Description), bayesian.Class(rec.Category))
	}
	cl.ConvertTermsFreqToTfIdf()

	return &Suggester{classes: classes, cl: cl}
}

// Suggest returns the best-guess category for a description, or "" when
// no suggestion can be made. Safe to call on a nil Suggester.
func (s *Suggester) Suggest(description string) string {
	if s == nil {
		return ""
	}
	scores, best, _ := s.cl.LogScores(tokens(description))
	if best < 0 || best >= len(scores) {
		return ""
	}
	return string(s.classes[best])
}

func tokens(description string) []string {
	return strings.Split(strings.ToLower(description), " ")
}
