package model

// Placeholder is stored for any field whose value is missing or unparseable.
const Placeholder = "N/A"

// DescriptionSentinel replaces a listing description that merely repeats the title.
const DescriptionSentinel = "See listing for details"

// Column names of a Listing when it is viewed as a generic Record.
const (
	ColumnTitle       = "Title"
	ColumnDescription = "Description"
	ColumnPrice       = "Price"
)

// ListingColumns is the column order used for listing result sets.
var ListingColumns = []string{ColumnTitle, ColumnDescription, ColumnPrice}

// Field is a single named value of a Record.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Record is the canonical, uniform shape every source is normalized into.
// Field order is significant and matches the owning ResultSet's Columns.
type Record struct {
	Fields []Field `json:"fields"`
}

// NewRecord builds a Record from parallel key and value slices.
// Missing values are filled with Placeholder.
func NewRecord(keys, values []string) Record {
	fields := make([]Field, len(keys))
	for i, k := range keys {
		v := Placeholder
		if i < len(values) && values[i] != "" {
			v = values[i]
		}
		fields[i] = Field{Key: k, Value: v}
	}
	return Record{Fields: fields}
}

// Get returns the value stored under key.
func (r Record) Get(key string) (string, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// Keys returns the field names in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		keys[i] = f.Key
	}
	return keys
}

// Values returns the field values in order.
func (r Record) Values() []string {
	values := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		values[i] = f.Value
	}
	return values
}

// Listing is the canonical record of the web pipeline.
// All three fields are always populated; Placeholder stands in for missing data.
type Listing struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// Record converts the listing into a generic Record with ListingColumns order.
func (l Listing) Record() Record {
	return NewRecord(ListingColumns, []string{l.Title, l.Description, l.Price})
}
