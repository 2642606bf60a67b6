package entity

// PaginationParams represents pagination request parameters
type PaginationParams struct {
	Page     int `json:"page" query:"page"`
	PageSize int `json:"page_size" query:"page_size"`
}

// Pagination fallbacks, used when the configuration supplies none.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
	MinPageSize     = 1
)

// Validate normalizes pagination parameters against the configured bounds.
// Out-of-range values are clamped rather than rejected.
func (p *PaginationParams) Validate(defaultSize, maxSize int) {
	if defaultSize < MinPageSize {
		defaultSize = DefaultPageSize
	}
	if maxSize < MinPageSize {
		maxSize = MaxPageSize
	}

	if p.Page < 1 {
		p.Page = DefaultPage
	}

	if p.PageSize < MinPageSize {
		p.PageSize = defaultSize
	} else if p.PageSize > maxSize {
		p.PageSize = maxSize
	}
}

// Offset calculates the database offset from page and page size
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}
