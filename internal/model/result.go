package model

import (
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ResultSet is the ordered list of records produced by one invocation.
// Insertion order equals the order in which candidates were encountered in the source.
type ResultSet struct {
	// Title is the human-readable heading used by reporters.
	Title string `json:"title"`

	// Columns lists the field names shared by every record.
	Columns []string `json:"columns"`

	// Records holds the normalized records.
	Records []Record `json:"records"`
}

// NewResultSet creates an empty ResultSet.
func NewResultSet(title string, columns []string) *ResultSet {
	return &ResultSet{
		Title:   title,
		Columns: columns,
		Records: make([]Record, 0),
	}
}

// Append adds a record at the end of the set.
// The first appended record fixes Columns when none were given.
func (rs *ResultSet) Append(r Record) {
	if len(rs.Columns) == 0 {
		rs.Columns = r.Keys()
	}
	rs.Records = append(rs.Records, r)
}

// Len returns the number of records.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Records)
}

// IsEmpty reports whether the set has no records.
func (rs *ResultSet) IsEmpty() bool {
	return rs.Len() == 0
}

// Outcome is the per-candidate result of normalization:
// either a record or a drop with a reason.
type Outcome struct {
	Index   int
	Record  *Record
	Dropped bool
	Reason  string
}

// Run is the state owned by a single pipeline invocation.
// Nothing in a Run is shared with another invocation.
type Run struct {
	// Source is the URL, file path, or query name this run reads from.
	Source string

	// Document is the parsed HTML of the web source. It is released once
	// candidates have been extracted.
	Document *goquery.Document

	// Rows is the raw relational result. It is released once candidates
	// have been extracted.
	Rows *RowSet

	// Tier is the locator strategy that produced Candidates.
	Tier Tier

	// Found is the number of candidates located before any max-results cap.
	Found int

	// Candidates are the located web subtrees.
	Candidates []Candidate

	// RowCandidates are the rows awaiting normalization.
	RowCandidates []RowCandidate

	// Outcomes records what happened to every candidate.
	Outcomes []Outcome

	// Result is the final record list.
	Result *ResultSet

	// Err is the error that stopped the run, if any.
	Err error

	// Performed lists the names of the steps that ran.
	Performed []string

	// Started is when the run began.
	Started time.Time
}

// NewRun creates a Run reading from source and producing a result titled title.
func NewRun(source, title string, columns []string) *Run {
	return &Run{
		Source:  source,
		Result:  NewResultSet(title, columns),
		Started: time.Now(),
	}
}

// Dropped returns the number of candidates that did not produce a record.
func (r *Run) Dropped() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Dropped {
			n++
		}
	}
	return n
}

// Failed reports whether the run stopped on an error.
func (r *Run) Failed() bool {
	return r.Err != nil
}
