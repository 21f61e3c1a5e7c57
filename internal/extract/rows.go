package extract

import "github.com/nao1215/scrapetab/internal/model"

// Rows turns a relational result into candidates.
// The rows are already structured, so this is an identity mapping that only
// attaches the index and column names.
func Rows(rs *model.RowSet) []model.RowCandidate {
	if rs == nil {
		return nil
	}
	candidates := make([]model.RowCandidate, len(rs.Rows))
	for i, row := range rs.Rows {
		candidates[i] = model.RowCandidate{Index: i, Columns: rs.Columns, Values: row}
	}
	return candidates
}
