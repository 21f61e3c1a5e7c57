package extract

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/scrapetab/internal/model"
)

// DefaultMaxResults is the candidate cap used when none is configured.
const DefaultMaxResults = 20

// Result is the output of one extraction.
type Result struct {
	// Tier is the strategy that produced Candidates, or TierNone.
	Tier model.Tier

	// Candidates are the located subtrees, capped and in source order.
	Candidates []model.Candidate

	// Found is the number located before the cap was applied.
	Found int
}

// Extractor runs an ordered chain of locators and keeps the result of the
// first one that finds anything.
type Extractor struct {
	locators   []Locator
	maxResults int
	logger     *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMaxResults keeps only the first n candidates.
func WithMaxResults(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxResults = n
		}
	}
}

// WithLocators replaces the locator chain.
func WithLocators(locators ...Locator) Option {
	return func(e *Extractor) {
		e.locators = locators
	}
}

// WithCurrency replaces every heuristic locator in the chain with one
// looking for marker.
func WithCurrency(marker string) Option {
	return func(e *Extractor) {
		locators := make([]Locator, len(e.locators))
		for i, l := range e.locators {
			if _, ok := l.(*HeuristicLocator); ok {
				l = NewHeuristicLocator(marker)
			}
			locators[i] = l
		}
		e.locators = locators
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// New creates an Extractor with the primary, secondary and heuristic chain.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		locators: []Locator{
			PrimaryLocator(),
			SecondaryLocator(),
			NewHeuristicLocator("₹"),
		},
		maxResults: DefaultMaxResults,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Extract tries each locator in order and stops at the first non-empty match.
// It never fails: a document matching no strategy yields an empty Result.
func (e *Extractor) Extract(doc *goquery.Document) Result {
	for _, l := range e.locators {
		found := l.Locate(doc)
		if len(found) == 0 {
			e.logger.Warn("no listings found, the page structure might have changed",
				"locator", l.Name(),
				"error", model.ErrStructureMismatch,
			)
			continue
		}

		kept := found
		if len(kept) > e.maxResults {
			kept = kept[:e.maxResults]
		}

		candidates := make([]model.Candidate, len(kept))
		for i, s := range kept {
			candidates[i] = model.Candidate{Index: i, Tier: l.Tier(), Selection: s}
		}

		e.logger.Info("listings found",
			"locator", l.Name(),
			"found", len(found),
			"kept", len(candidates),
		)

		return Result{Tier: l.Tier(), Candidates: candidates, Found: len(found)}
	}

	return Result{Tier: model.TierNone}
}

// Parse builds a document tree from raw HTML.
// The HTML parser recovers from malformed markup, so an error only comes
// from reading the input.
func Parse(body []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return doc, nil
}
