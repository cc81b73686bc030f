package importer

import "strings"

// layoutTokens translates bank-facing date pattern tokens to Go reference
// layout fragments. Longer tokens are listed first so "yyyy" wins over "yy".
var layoutTokens = []struct {
	pattern string
	layout  string
}{
	{"yyyy", "2006"},
	{"yy", "06"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"MM", "01"},
	{"M", "1"},
	{"dd", "02"},
	{"d", "2"},
}

// DateLayout normalizes a mapping's date format to a Go time layout.
// Bank-style patterns contain a year token ("yyyy" or "yy") and are
// translated token by token; anything else is assumed to already be a Go
// reference layout and passes through untouched.
func DateLayout(format string) string {
	if !strings.Contains(format, "yy") {
		return format
	}

	var b strings.Builder
	for i := 0; i < len(format); {
		matched := false
		for _, t := range layoutTokens {
			if strings.HasPrefix(format[i:], t.pattern) {
				b.WriteString(t.layout)
				i += len(t.pattern)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(format[i])
			i++
		}
	}
	return b.String()
}
