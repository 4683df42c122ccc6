package dto

// Paginated wraps any list response with its total count and page window.
type Paginated struct {
	Count    int64 `json:"count"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Results  any   `json:"results"`
}

func NewPaginated(results any, count int64, page, pageSize int) *Paginated {
	return &Paginated{
		Count:    count,
		Page:     page,
		PageSize: pageSize,
		Results:  results,
	}
}
