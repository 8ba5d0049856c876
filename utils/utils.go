package utils

// Pagination describes one page of a list response.
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
}

// CreatePagination builds a Pagination, clamping page and pageSize to sane
// values.
func CreatePagination(totalItems, page, pageSize int) *Pagination {
	if pageSize <= 0 {
		pageSize = 10
	}
	if page <= 0 {
		page = 1
	}

	return &Pagination{
		TotalItems:  totalItems,
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  (totalItems + pageSize - 1) / pageSize,
	}
}

// Offset is the row offset of the current page.
func (p *Pagination) Offset() int {
	return (p.CurrentPage - 1) * p.PageSize
}
