package model

import "github.com/PuerkitoBio/goquery"

// Tier identifies which locator strategy produced a candidate.
// Lower tiers are more trustworthy.
type Tier int

const (
	// TierNone means no strategy matched.
	TierNone Tier = iota

	// TierPrimary candidates were found by a stable semantic test-id attribute.
	TierPrimary

	// TierSecondary candidates were found by a CSS class fingerprint.
	// Class names are generated by the site's build and change without notice.
	TierSecondary

	// TierHeuristic candidates were found by looking for a currency marker in
	// element text. Results are best-effort and may include non-listing elements.
	TierHeuristic

	// TierRow candidates come from a relational source and are already structured.
	TierRow
)

// String returns a human-readable representation of the tier.
func (t Tier) String() string {
	switch t {
	case TierNone:
		return "none"
	case TierPrimary:
		return "primary"
	case TierSecondary:
		return "secondary"
	case TierHeuristic:
		return "heuristic"
	case TierRow:
		return "row"
	default:
		return "unknown"
	}
}

// Candidate is a document subtree believed to contain one record.
// It is consumed by the normalizer and not retained after the run.
type Candidate struct {
	// Index is the zero-based position in source order.
	Index int

	// Tier is the strategy that located the candidate.
	Tier Tier

	// Selection is the located subtree.
	Selection *goquery.Selection
}

// RowSet is the raw output of a relational query.
// Values are nil for SQL NULL; []byte values are already converted to string.
type RowSet struct {
	Columns []string
	Rows    [][]any
}

// Len returns the number of rows.
func (rs *RowSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Rows)
}

// RowCandidate is one row of a RowSet awaiting normalization.
type RowCandidate struct {
	Index   int
	Columns []string
	Values  []any
}
