package normalize

import (
	"errors"

	"github.com/nao1215/scrapetab/internal/model"
)

// ListingOutcome normalizes one web candidate into an Outcome.
func ListingOutcome(c model.Candidate) model.Outcome {
	l, err := Listing(c)
	if err != nil {
		return dropped(c.Index, err)
	}
	r := l.Record()
	return model.Outcome{Index: c.Index, Record: &r}
}

// RowOutcome normalizes one row candidate into an Outcome.
func RowOutcome(c model.RowCandidate, keyColumn int) model.Outcome {
	r, err := Row(c, keyColumn)
	if err != nil {
		return dropped(c.Index, err)
	}
	return model.Outcome{Index: c.Index, Record: &r}
}

// dropped builds the Outcome of a rejected candidate.
func dropped(index int, err error) model.Outcome {
	reason := err.Error()
	if !errors.Is(err, model.ErrFieldExtraction) {
		reason = "unexpected: " + reason
	}
	return model.Outcome{Index: index, Dropped: true, Reason: reason}
}
