package extract

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/scrapetab/internal/model"
)

// Fixture pages that each satisfy exactly one locator tier.
const (
	primaryPage = `<html><body><ul>
<li data-aut-id="itemBox"><span data-aut-id="itemTitle">Car Cover A</span><span data-aut-id="itemPrice">₹ 499</span></li>
<li data-aut-id="itemBox"><span data-aut-id="itemTitle">Car Cover B</span><span data-aut-id="itemPrice">₹ 650</span></li>
</ul>
<div class="_1DNjI"><span>should not be used</span></div>
<div>₹ 999</div>
</body></html>`

	secondaryPage = `<html><body>
<div class="_1DNjI"><span data-aut-id="itemTitle">Cover One</span></div>
<div class="_1DNjI"><span data-aut-id="itemTitle">Cover Two</span></div>
<div class="_1DNjI"><span data-aut-id="itemTitle">Cover Three</span></div>
<div>₹ 999</div>
</body></html>`

	heuristicPage = `<html><body>
<div>₹ 1,200</div>
<div><b>₹ 800</b></div>
<div>Free delivery</div>
<div><span>₹ 300</span><span>extra</span></div>
</body></html>`

	emptyPage = `<html><body><p>Nothing to see</p></body></html>`
)

// mustParse parses a fixture page.
func mustParse(t *testing.T, page string) *goquery.Document {
	t.Helper()
	doc, err := Parse([]byte(page))
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	return doc
}

// quietLogger discards log output.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingLocator records whether it was invoked.
type countingLocator struct {
	Locator
	calls int
}

// Locate implements Locator.Locate.
func (c *countingLocator) Locate(doc *goquery.Document) []*goquery.Selection {
	c.calls++
	return c.Locator.Locate(doc)
}

// TestLocators tests every strategy against a page that only it satisfies.
func TestLocators(t *testing.T) {
	t.Parallel()

	t.Run("primary finds test-id cards", func(t *testing.T) {
		t.Parallel()

		found := PrimaryLocator().Locate(mustParse(t, primaryPage))
		if len(found) != 2 {
			t.Fatalf("expected 2 candidates, got %d", len(found))
		}
		if !strings.Contains(found[0].Text(), "Car Cover A") {
			t.Errorf("expected first card first, got %q", found[0].Text())
		}
	})

	t.Run("primary finds nothing on secondary page", func(t *testing.T) {
		t.Parallel()

		if found := PrimaryLocator().Locate(mustParse(t, secondaryPage)); len(found) != 0 {
			t.Errorf("expected 0 candidates, got %d", len(found))
		}
	})

	t.Run("secondary finds class fingerprint", func(t *testing.T) {
		t.Parallel()

		if found := SecondaryLocator().Locate(mustParse(t, secondaryPage)); len(found) != 3 {
			t.Errorf("expected 3 candidates, got %d", len(found))
		}
	})

	t.Run("heuristic finds divs with sole currency text", func(t *testing.T) {
		t.Parallel()

		found := NewHeuristicLocator("₹").Locate(mustParse(t, heuristicPage))
		if len(found) != 2 {
			t.Fatalf("expected 2 candidates, got %d", len(found))
		}
		if strings.TrimSpace(found[0].Text()) != "₹ 1,200" {
			t.Errorf("unexpected first candidate %q", found[0].Text())
		}
		if strings.TrimSpace(found[1].Text()) != "₹ 800" {
			t.Errorf("unexpected second candidate %q", found[1].Text())
		}
	})

	t.Run("heuristic with empty marker finds nothing", func(t *testing.T) {
		t.Parallel()

		if found := NewHeuristicLocator("").Locate(mustParse(t, heuristicPage)); len(found) != 0 {
			t.Errorf("expected 0 candidates, got %d", len(found))
		}
	})

	t.Run("nil document finds nothing", func(t *testing.T) {
		t.Parallel()

		if found := PrimaryLocator().Locate(nil); len(found) != 0 {
			t.Errorf("expected 0 candidates, got %d", len(found))
		}
		if found := NewHeuristicLocator("₹").Locate(nil); len(found) != 0 {
			t.Errorf("expected 0 candidates, got %d", len(found))
		}
	})
}

// TestExtractorExtract tests the locator chain.
func TestExtractorExtract(t *testing.T) {
	t.Parallel()

	t.Run("primary match stops the chain", func(t *testing.T) {
		t.Parallel()

		primary := &countingLocator{Locator: PrimaryLocator()}
		secondary := &countingLocator{Locator: SecondaryLocator()}
		heuristic := &countingLocator{Locator: NewHeuristicLocator("₹")}

		e := New(WithLocators(primary, secondary, heuristic), WithLogger(quietLogger()))
		result := e.Extract(mustParse(t, primaryPage))

		if result.Tier != model.TierPrimary {
			t.Errorf("expected primary tier, got %s", result.Tier)
		}
		if len(result.Candidates) != 2 {
			t.Errorf("expected 2 candidates, got %d", len(result.Candidates))
		}
		if secondary.calls != 0 || heuristic.calls != 0 {
			t.Errorf("expected lower tiers not to run, got secondary=%d heuristic=%d", secondary.calls, heuristic.calls)
		}
	})

	t.Run("falls through to secondary", func(t *testing.T) {
		t.Parallel()

		result := New(WithLogger(quietLogger())).Extract(mustParse(t, secondaryPage))

		if result.Tier != model.TierSecondary {
			t.Errorf("expected secondary tier, got %s", result.Tier)
		}
		if len(result.Candidates) != 3 {
			t.Errorf("expected 3 candidates, got %d", len(result.Candidates))
		}
		for _, c := range result.Candidates {
			if c.Tier != model.TierSecondary {
				t.Errorf("candidate %d: expected secondary tier, got %s", c.Index, c.Tier)
			}
		}
	})

	t.Run("falls through to heuristic", func(t *testing.T) {
		t.Parallel()

		result := New(WithLogger(quietLogger())).Extract(mustParse(t, heuristicPage))

		if result.Tier != model.TierHeuristic {
			t.Errorf("expected heuristic tier, got %s", result.Tier)
		}
		if len(result.Candidates) != 2 {
			t.Errorf("expected 2 candidates, got %d", len(result.Candidates))
		}
	})

	t.Run("custom currency marker", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><div>$ 20</div><div>₹ 30</div></body></html>`
		result := New(WithCurrency("$"), WithLogger(quietLogger())).Extract(mustParse(t, page))

		if len(result.Candidates) != 1 {
			t.Fatalf("expected 1 candidate, got %d", len(result.Candidates))
		}
		if result.Candidates[0].Selection.Text() != "$ 20" {
			t.Errorf("unexpected candidate %q", result.Candidates[0].Selection.Text())
		}
	})

	t.Run("custom currency leaves the given locators untouched", func(t *testing.T) {
		t.Parallel()

		rupee := NewHeuristicLocator("₹")
		chain := []Locator{PrimaryLocator(), rupee}

		New(WithLocators(chain...), WithCurrency("$"), WithLogger(quietLogger()))

		if chain[1] != Locator(rupee) {
			t.Error("expected the caller's locator slice to be unchanged")
		}
		if found := chain[1].Locate(mustParse(t, `<html><body><div>$ 20</div></body></html>`)); len(found) != 0 {
			t.Errorf("expected the rupee locator to keep its marker, got %d candidates", len(found))
		}
	})

	t.Run("no match yields empty result without error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		result := New(WithLogger(logger)).Extract(mustParse(t, emptyPage))

		if result.Tier != model.TierNone {
			t.Errorf("expected no tier, got %s", result.Tier)
		}
		if len(result.Candidates) != 0 {
			t.Errorf("expected 0 candidates, got %d", len(result.Candidates))
		}
		if strings.Count(buf.String(), "structure might have changed") != 3 {
			t.Errorf("expected one mismatch warning per tier, got: %s", buf.String())
		}
	})

	t.Run("nil document yields empty result", func(t *testing.T) {
		t.Parallel()

		result := New(WithLogger(quietLogger())).Extract(nil)
		if len(result.Candidates) != 0 {
			t.Errorf("expected 0 candidates, got %d", len(result.Candidates))
		}
	})

	t.Run("max results keeps the first candidates in order", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		sb.WriteString("<html><body><ul>")
		for i := range 30 {
			fmt.Fprintf(&sb, `<li data-aut-id="itemBox"><span data-aut-id="itemTitle">Item %d</span></li>`, i)
		}
		sb.WriteString("</ul></body></html>")

		result := New(WithMaxResults(5), WithLogger(quietLogger())).Extract(mustParse(t, sb.String()))

		if result.Found != 30 {
			t.Errorf("expected 30 found, got %d", result.Found)
		}
		if len(result.Candidates) != 5 {
			t.Fatalf("expected 5 candidates, got %d", len(result.Candidates))
		}
		for i, c := range result.Candidates {
			if c.Index != i {
				t.Errorf("expected index %d, got %d", i, c.Index)
			}
			if c.Selection.Text() != fmt.Sprintf("Item %d", i) {
				t.Errorf("candidate %d: got %q", i, c.Selection.Text())
			}
		}
	})

	t.Run("default max results is 20", func(t *testing.T) {
		t.Parallel()

		if e := New(); e.maxResults != 20 {
			t.Errorf("expected 20, got %d", e.maxResults)
		}
	})
}

// TestRows tests the identity row extractor.
func TestRows(t *testing.T) {
	t.Parallel()

	t.Run("keeps rows and order", func(t *testing.T) {
		t.Parallel()

		rs := &model.RowSet{
			Columns: []string{"ncbi_id", "species"},
			Rows: [][]any{
				{int64(9694), "Panthera tigris"},
				{int64(9695), "Panthera tigris altaica"},
			},
		}

		candidates := Rows(rs)
		if len(candidates) != 2 {
			t.Fatalf("expected 2 candidates, got %d", len(candidates))
		}
		if candidates[1].Index != 1 || candidates[1].Values[1] != "Panthera tigris altaica" {
			t.Errorf("unexpected candidate %+v", candidates[1])
		}
		if candidates[0].Columns[0] != "ncbi_id" {
			t.Errorf("expected columns to be attached, got %v", candidates[0].Columns)
		}
	})

	t.Run("nil row set", func(t *testing.T) {
		t.Parallel()

		if candidates := Rows(nil); len(candidates) != 0 {
			t.Errorf("expected no candidates, got %d", len(candidates))
		}
	})
}
