package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRecordID(t *testing.T) {
	tests := []struct {
		year, month, seq int
		want             string
	}{
		{2025, 1, 1, "2025-01-001"},
		{2025, 12, 99, "2025-12-099"},
		{2025, 6, 123, "2025-06-123"},
	}
	for _, tt := range tests {
		got := FormatRecordID(tt.year, tt.month, tt.seq)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatRecordID_Sortable(t *testing.T) {
	// Lexicographic order must track creation order within a month.
	assert.Less(t, FormatRecordID(2025, 6, 9), FormatRecordID(2025, 6, 10))
	assert.Less(t, FormatRecordID(2025, 6, 99), FormatRecordID(2025, 6, 100))
}

func TestParseRecordID(t *testing.T) {
	tests := []struct {
		input               string
		wantYear, wantMonth int
		wantSeq             int
	}{
		{"2025-01-001", 2025, 1, 1},
		{"2025-12-099", 2025, 12, 99},
		{"2025-06-123", 2025, 6, 123},
	}
	for _, tt := range tests {
		year, month, seq, err := ParseRecordID(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.wantYear, year)
		assert.Equal(t, tt.wantMonth, month)
		assert.Equal(t, tt.wantSeq, seq)
	}
}

func TestParseRecordID_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"not-valid",
		"2025-01",
		"xxxx-01-001",
		"2025-xx-001",
		"2025-01-xxx",
	}
	for _, input := range badInputs {
		_, _, _, err := ParseRecordID(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}
