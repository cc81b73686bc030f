package reconcile

import (
	"time"

	"github.com/google/uuid"

	"github.com/booked-dev/booked/internal/importer"
	"github.com/booked-dev/booked/internal/match"
	"github.com/booked-dev/booked/internal/model"
)

// Session is the reviewable outcome of running one statement through the
// coordinator: candidates in statement order plus the row errors collected
// while parsing. Nothing touches the ledger until Apply.
type Session struct {
	ID         uuid.UUID
	File       string
	FormatID   string
	Bank       importer.BankFormat
	Category   string
	Candidates []model.Candidate
	RowErrors  []importer.RowError
	Started    time.Time
}

// BuildSession composes a parse result and a ledger snapshot into a fresh
// session: every transaction is classified against the snapshot and carries
// its default action. Nothing is written; discarding the session has no
// effect on the ledger.
func BuildSession(file string, result *importer.ParseResult, existing []model.Record, category string) *Session {
	return &Session{
		ID:         uuid.New(),
		File:       file,
		FormatID:   result.FormatID,
		Category:   category,
		Candidates: match.BuildCandidates(result.Transactions, category, existing),
		RowErrors:  result.Errors,
		Started:    time.Now(),
	}
}

// Counts returns how many candidates hold each match type.
func (s *Session) Counts() (newCount, likely, exact int) {
	for _, cand := range s.Candidates {
		switch cand.Match {
		case model.MatchNew:
			newCount++
		case model.MatchLikely:
			likely++
		case model.MatchExact:
			exact++
		}
	}
	return newCount, likely, exact
}
