package store

// PaginationParams contains limit/offset pagination request parameters.
// Listings are ordered by creation time ascending, so a fixed offset walk
// never skips or repeats rows between pages.
type PaginationParams struct {
	Limit  int // Items per page (defaults to 20 with a maximum of 100)
	Offset int // Rows to skip (never negative)
}

// Page contains one page of results and a continuation flag.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// DefaultPaginationParams returns sensible defaults.
func DefaultPaginationParams() PaginationParams {
	return PaginationParams{
		Limit:  20,
		Offset: 0,
	}
}

// Validate checks and corrects pagination parameters.
func (p *PaginationParams) Validate() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}
