package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchTypeDefaultAction(t *testing.T) {
	tests := []struct {
		match MatchType
		want  ImportAction
	}{
		{MatchNew, ActionImport},
		{MatchLikely, ActionImport},
		{MatchExact, ActionSkip},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.match.DefaultAction(), "DefaultAction(%s)", tt.match)
	}
}

func TestRecordFields(t *testing.T) {
	r := Record{
		ID:          "2025-06-001",
		Description: "Client Payment",
		Category:    "Sales",
		Source:      "hsbc_june.csv",
	}
	f := r.Fields()
	assert.Equal(t, "Client Payment", f.Description)
	assert.Equal(t, "Sales", f.Category)
}
