package match

import (
	"time"

	"github.com/booked-dev/booked/internal/model"
)

// Classify compares one statement transaction against a snapshot of existing
// ledger records. category is the category the candidate would be filed
// under; it may be empty and is compared literally.
//
// Records sharing the transaction's calendar date and exact amount form the
// duplicate bucket. An empty bucket classifies NEW. Otherwise the least
// divergent record (description and category differences counted, ties
// broken by smallest record id) is attached: EXACT when nothing diverges,
// LIKELY otherwise.
func Classify(txn model.StatementTransaction, category string, existing []model.Record) (model.MatchType, *model.Record) {
	best := -1
	bestDiv := 0

	for i := range existing {
		r := &existing[i]
		if !sameDay(r.Date, txn.Date) || !r.Amount.Equal(txn.Amount) {
			continue
		}
		div := divergence(txn, category, r)
		if best == -1 || div < bestDiv || (div == bestDiv && r.ID < existing[best].ID) {
			best, bestDiv = i, div
		}
	}

	if best == -1 {
		return model.MatchNew, nil
	}
	if bestDiv == 0 {
		return model.MatchExact, &existing[best]
	}
	return model.MatchLikely, &existing[best]
}

// BuildCandidates classifies each transaction in statement order and assigns
// the match-type default action. Matched candidates carry an advisory
// description similarity score.
func BuildCandidates(txns []model.StatementTransaction, category string, existing []model.Record) []model.Candidate {
	candidates := make([]model.Candidate, 0, len(txns))
	for _, txn := range txns {
		mt, rec := Classify(txn, category, existing)
		c := model.Candidate{
			Transaction: txn,
			Category:    category,
			Match:       mt,
			Matched:     rec,
			Action:      mt.DefaultAction(),
		}
		if rec != nil {
			c.Similarity = Similarity(txn.Description, rec.Description)
		}
		candidates = append(candidates, c)
	}
	return candidates
}

// divergence counts comparable fields differing between the transaction and
// a record already known to share its date and amount.
func divergence(txn model.StatementTransaction, category string, r *model.Record) int {
	d := 0
	if r.Description != txn.Description {
		d++
	}
	if r.Category != category {
		d++
	}
	return d
}

// sameDay compares calendar dates, ignoring time of day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
