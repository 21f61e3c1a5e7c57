package database

// Pagination describes one page of an ordered result.
// Pages are numbered from 1.
type Pagination struct {
	Page     int
	PageSize int
}

// Limit returns the LIMIT of the page.
func (p Pagination) Limit() int {
	return p.PageSize
}

// Offset returns the number of rows skipped before the page.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// FirstRow returns the 1-based number of the first row on the page.
func (p Pagination) FirstRow() int {
	return p.Offset() + 1
}

// LastRow returns the 1-based number of the last row the page can hold.
func (p Pagination) LastRow() int {
	return p.Offset() + p.PageSize
}

// PageCount returns the number of pages needed for total rows.
func (p Pagination) PageCount(total int64) int64 {
	if p.PageSize <= 0 || total <= 0 {
		return 0
	}
	size := int64(p.PageSize)
	return (total + size - 1) / size
}
