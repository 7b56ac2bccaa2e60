package models

// Page is client-side pagination state for a server-paginated list. The
// server is the source of truth: after each fetch the echoed page, per_page
// and total overwrite whatever was requested.
type Page struct {
	Current  int
	PageSize int
	Total    int
}

// Pages returns the number of pages implied by Total and PageSize,
// rounding up. Zero when either is unset.
func (p Page) Pages() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}
