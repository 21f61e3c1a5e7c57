package database

import (
	"fmt"
	"strings"
)

// Query is one fixed statement of the catalog.
type Query struct {
	// Name is the identifier used on the command line.
	Name string

	// Title is the report heading.
	Title string

	// SQL uses ? placeholders.
	SQL string

	// Args are bound to the placeholders in order.
	Args []any

	// KeyColumn is the index of the column that identifies a row.
	// A row whose key is NULL is dropped. -1 disables the check.
	KeyColumn int
}

// Catalog query names.
const (
	QueryTigers      = "tigers"
	QuerySumatran    = "sumatran"
	QueryForeignKeys = "foreign-keys"
	QueryRiceLongest = "rice-longest"
	QueryFamilyCount = "family-count"
	QueryFamilyPage  = "family-page"
)

// Params are the values bound into the parameterized catalog statements.
type Params struct {
	// Schema is the database whose foreign keys are listed.
	Schema string

	// Pagination selects the family page.
	Pagination Pagination

	// MinLength is the sequence length a family must exceed.
	MinLength int64
}

// Catalog returns every query in its default execution order.
func Catalog(p Params) []Query {
	return []Query{
		{
			Name:  QueryTigers,
			Title: "All Tiger Types in Taxonomy",
			SQL: `SELECT ncbi_id, species, tax_string
FROM taxonomy
WHERE tax_string LIKE '%Panthera tigris%'
ORDER BY species`,
		},
		{
			Name:  QuerySumatran,
			Title: "Sumatran Tiger (Panthera tigris sumatrae)",
			SQL: `SELECT ncbi_id, species, tax_string
FROM taxonomy
WHERE species LIKE '%sumatrae%' OR tax_string LIKE '%sumatrae%'`,
		},
		{
			Name:  QueryForeignKeys,
			Title: "Foreign Key Relationships",
			SQL: `SELECT TABLE_NAME, COLUMN_NAME, CONSTRAINT_NAME, REFERENCED_TABLE_NAME, REFERENCED_COLUMN_NAME
FROM INFORMATION_SCHEMA.KEY_COLUMN_USAGE
WHERE TABLE_SCHEMA = ? AND REFERENCED_TABLE_NAME IS NOT NULL
ORDER BY TABLE_NAME, COLUMN_NAME`,
			Args: []any{p.Schema},
		},
		{
			Name:  QueryRiceLongest,
			Title: "Top 5 Rice Types by DNA Sequence Length",
			SQL: `SELECT t.ncbi_id, t.species, t.tax_string, r.rfamseq_acc, r.length AS sequence_length, r.description
FROM rfamseq r
INNER JOIN taxonomy t ON r.ncbi_id = t.ncbi_id
WHERE t.tax_string LIKE '%Oryza%'
ORDER BY r.length DESC
LIMIT 5`,
		},
		{
			Name:  QueryFamilyCount,
			Title: "Families by Maximum Sequence Length",
			SQL: `SELECT COUNT(*) AS total_families
FROM (
	SELECT f.rfam_acc, MAX(r.length) AS max_length
	FROM family f
	INNER JOIN rfamseq r ON f.rfam_acc = r.rfam_acc
	GROUP BY f.rfam_acc
	HAVING MAX(r.length) > ?
) AS filtered_families`,
			Args: []any{p.MinLength},
		},
		{
			Name:  QueryFamilyPage,
			Title: fmt.Sprintf("Page %d: Family Names and Max Sequence Lengths", p.Pagination.Page),
			SQL: `SELECT f.rfam_acc AS family_accession, f.rfam_id AS family_name, MAX(r.length) AS max_sequence_length
FROM family f
INNER JOIN rfamseq r ON f.rfam_acc = r.rfam_acc
GROUP BY f.rfam_acc, f.rfam_id
HAVING MAX(r.length) > ?
ORDER BY max_sequence_length DESC
LIMIT ? OFFSET ?`,
			Args: []any{p.MinLength, p.Pagination.Limit(), p.Pagination.Offset()},
		},
	}
}

// Names returns the catalog query names in execution order.
func Names() []string {
	queries := Catalog(Params{})
	names := make([]string, len(queries))
	for i, q := range queries {
		names[i] = q.Name
	}
	return names
}

// Select returns the named queries in the order given.
// An empty name list selects the whole catalog.
func Select(catalog []Query, names []string) ([]Query, error) {
	if len(names) == 0 {
		return catalog, nil
	}

	byName := make(map[string]Query, len(catalog))
	for _, q := range catalog {
		byName[q.Name] = q
	}

	selected := make([]Query, 0, len(names))
	for _, name := range names {
		q, ok := byName[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownQuery, name, strings.Join(Names(), ", "))
		}
		selected = append(selected, q)
	}
	return selected, nil
}
