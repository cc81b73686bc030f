package match

import (
	"strings"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Similarity scores how close two descriptions are: 1 for identical strings
// down to 0 for entirely different ones. Case and surrounding whitespace are
// ignored. The score is advisory display information and never feeds
// classification.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1
	}

	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}

	distance := levenshtein.DistanceForStrings(ra, rb, levenshtein.DefaultOptions)
	return 1 - float64(distance)/float64(longest)
}
