package model

// MatchType classifies how a statement transaction relates to the existing
// ledger. Every candidate resolves to exactly one of the three.
type MatchType string

const (
	// MatchNew means no existing record shares the transaction's date and amount.
	MatchNew MatchType = "NEW"
	// MatchLikely means date and amount match an existing record but the
	// description or category differs.
	MatchLikely MatchType = "LIKELY"
	// MatchExact means every comparable field is identical to an existing record.
	MatchExact MatchType = "EXACT"
)

// ImportAction is the resolution applied to a candidate.
type ImportAction string

const (
	// ActionImport creates a new ledger record from the transaction.
	ActionImport ImportAction = "import"
	// ActionSkip discards the candidate, leaving the ledger unchanged.
	ActionSkip ImportAction = "skip"
	// ActionUpdate overwrites the matched record's mutable fields with the
	// candidate's values.
	ActionUpdate ImportAction = "update"
)

// DefaultAction returns the action assigned to a candidate at creation.
// LIKELY defaults to import: a probable duplicate is created unless the
// caller overrides before apply.
func (m MatchType) DefaultAction() ImportAction {
	if m == MatchExact {
		return ActionSkip
	}
	return ActionImport
}

// Candidate pairs one parsed transaction with its classification against the
// ledger. Action starts at the match-type default and may be overridden by
// the caller before apply; the other fields are fixed at creation.
type Candidate struct {
	Transaction StatementTransaction
	Category    string // category the record will be filed under, may be empty

	Match      MatchType
	Matched    *Record // nil for NEW
	Similarity float64 // description similarity to Matched in [0,1], advisory

	SuggestedCategory string // from the categorizer, advisory

	Action ImportAction
}
