package normalize

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/scrapetab/internal/model"
)

// Field selectors inside a listing card.
const (
	TitleSelector   = `[data-aut-id="itemTitle"]`
	PriceSelector   = `[data-aut-id="itemPrice"]`
	DetailSelector  = `span._2tW1I`
	detailSeparator = " | "
	maxDetailSpans  = 2
)

// Listing converts a located card into a canonical Listing.
//
// The description is the first two detail spans joined with " | " and falls
// back to the title. A description equal to the title becomes
// model.DescriptionSentinel. Missing price or description becomes
// model.Placeholder. A card without a title cannot be identified and is
// rejected with model.ErrFieldExtraction.
//
// Listing is pure: the same candidate always yields the same result.
func Listing(c model.Candidate) (model.Listing, error) {
	if c.Selection == nil || c.Selection.Length() == 0 {
		return model.Listing{}, fmt.Errorf("candidate %d: empty selection: %w", c.Index, model.ErrFieldExtraction)
	}

	title := firstText(c.Selection, TitleSelector)
	if title == "" {
		return model.Listing{}, fmt.Errorf("candidate %d: missing title: %w", c.Index, model.ErrFieldExtraction)
	}

	price := firstText(c.Selection, PriceSelector)
	if price == "" {
		price = model.Placeholder
	}

	description := title
	if details := detailTexts(c.Selection); len(details) > 0 {
		description = strings.Join(details, detailSeparator)
	}
	if description == title {
		description = model.DescriptionSentinel
	}

	return model.Listing{
		Title:       title,
		Description: description,
		Price:       price,
	}, nil
}

// firstText returns the cleaned text of the first match of selector.
func firstText(s *goquery.Selection, selector string) string {
	return Text(s.Find(selector).First().Text())
}

// detailTexts returns the cleaned text of up to maxDetailSpans non-blank
// detail spans.
func detailTexts(s *goquery.Selection) []string {
	var details []string
	s.Find(DetailSelector).EachWithBreak(func(_ int, d *goquery.Selection) bool {
		if text := Text(d.Text()); text != "" {
			details = append(details, text)
		}
		return len(details) < maxDetailSpans
	})
	return details
}
