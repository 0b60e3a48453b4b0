package domain

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationParams carries page/pageSize values from the HTTP layer to the repo layer.
// Page is 1-indexed. PageSize is capped at MaxPageSize by NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// PageSize is the maximum number of items to return.
	PageSize int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers and values below 1 fall back to page=1, pageSize=20.
// The page size is capped at 100 to prevent runaway queries.
func NewPaginationParams(page, pageSize *int) PaginationParams {
	p := PaginationParams{Page: 1, PageSize: DefaultPageSize}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if pageSize != nil && *pageSize >= 1 {
		p.PageSize = min(*pageSize, MaxPageSize)
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
