package normalize

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nao1215/scrapetab/internal/model"
)

// Row converts a relational row into a canonical Record.
// Every value is rendered as text; NULL and empty values become
// model.Placeholder. A row whose natural key column (keyColumn) is NULL or
// empty is rejected with model.ErrFieldExtraction.
func Row(c model.RowCandidate, keyColumn int) (model.Record, error) {
	values := make([]string, len(c.Columns))
	for i := range c.Columns {
		if i < len(c.Values) {
			values[i] = Text(FormatValue(c.Values[i]))
		}
	}

	if keyColumn >= 0 && keyColumn < len(values) && values[keyColumn] == "" {
		return model.Record{}, fmt.Errorf("row %d: missing %s: %w", c.Index, c.Columns[keyColumn], model.ErrFieldExtraction)
	}

	return model.NewRecord(c.Columns, values), nil
}

// FormatValue renders a scanned database value as text.
// A nil value renders as the empty string.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}
