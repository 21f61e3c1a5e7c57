package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/scrapetab/internal/model"
	"golang.org/x/net/html"
)

// Selectors of the listings page, most stable first.
const (
	// PrimarySelector matches the semantic test-id the site puts on every result card.
	PrimarySelector = `li[data-aut-id="itemBox"]`

	// SecondarySelector matches the generated class name of the result card container.
	SecondarySelector = `div._1DNjI`
)

// Locator finds candidate record subtrees in a document.
// Each strategy is independently usable and testable.
type Locator interface {
	// Name returns the strategy name for logging.
	Name() string

	// Tier returns the trust tier of the candidates this strategy produces.
	Tier() model.Tier

	// Locate returns the matching subtrees in document order.
	// It returns an empty slice, never an error, when nothing matches.
	Locate(doc *goquery.Document) []*goquery.Selection
}

// selectorLocator is a Locator backed by a single CSS selector.
type selectorLocator struct {
	name     string
	tier     model.Tier
	selector string
}

// Name returns the strategy name.
func (l selectorLocator) Name() string {
	return l.name
}

// Tier returns the strategy tier.
func (l selectorLocator) Tier() model.Tier {
	return l.tier
}

// Locate returns every element matching the selector.
func (l selectorLocator) Locate(doc *goquery.Document) []*goquery.Selection {
	if doc == nil {
		return nil
	}
	var found []*goquery.Selection
	doc.Find(l.selector).Each(func(_ int, s *goquery.Selection) {
		found = append(found, s)
	})
	return found
}

// PrimaryLocator finds result cards by their test-id attribute.
func PrimaryLocator() Locator {
	return selectorLocator{name: "primary", tier: model.TierPrimary, selector: PrimarySelector}
}

// SecondaryLocator finds result cards by their class fingerprint.
func SecondaryLocator() Locator {
	return selectorLocator{name: "secondary", tier: model.TierSecondary, selector: SecondarySelector}
}

// HeuristicLocator finds div elements whose sole text content contains the
// currency marker. It is a best-effort tier: prices outside listings match too.
type HeuristicLocator struct {
	marker string
}

// NewHeuristicLocator creates a HeuristicLocator looking for marker.
func NewHeuristicLocator(marker string) *HeuristicLocator {
	return &HeuristicLocator{marker: marker}
}

// Name returns the strategy name.
func (l *HeuristicLocator) Name() string {
	return "heuristic"
}

// Tier returns the strategy tier.
func (l *HeuristicLocator) Tier() model.Tier {
	return model.TierHeuristic
}

// Locate returns every div whose only content, possibly through a chain of
// single-child wrappers, is a text node containing the marker.
func (l *HeuristicLocator) Locate(doc *goquery.Document) []*goquery.Selection {
	if doc == nil || l.marker == "" {
		return nil
	}
	var found []*goquery.Selection
	doc.Find("div").Each(func(_ int, s *goquery.Selection) {
		for _, n := range s.Nodes {
			if text, ok := soleText(n); ok && strings.Contains(text, l.marker) {
				found = append(found, s)
				return
			}
		}
	})
	return found
}

// soleText returns the text of n when n has exactly one child and that child
// is a text node or, recursively, an element with a sole text child.
func soleText(n *html.Node) (string, bool) {
	child := n.FirstChild
	if child == nil || child.NextSibling != nil {
		return "", false
	}
	switch child.Type {
	case html.TextNode:
		return child.Data, true
	case html.ElementNode:
		return soleText(child)
	default:
		return "", false
	}
}
