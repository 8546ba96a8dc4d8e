package store

import "strings"

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// PaginationParams selects one page of a search.
type PaginationParams struct {
	Page     int    // 1-indexed
	PageSize int
	Query    string // substring to match; empty matches everything
}

// PaginationResult describes where a page sits in the full result set.
type PaginationResult struct {
	Total       int64
	TotalPages  int
	CurrentPage int
	PageSize    int
	HasPrev     bool
	HasNext     bool
	PrevPage    int
	NextPage    int
}

// NewPaginationParams clamps page and pageSize and trims the query.
func NewPaginationParams(page, pageSize int, query string) PaginationParams {
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	return PaginationParams{
		Page:     max(page, 1),
		PageSize: min(pageSize, maxPageSize),
		Query:    strings.TrimSpace(query),
	}
}

// Offset is the number of rows before the requested page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// CalculatePagination builds the metadata for page currentPage of total rows.
// A page past the end is pulled back to the last page.
func CalculatePagination(total int64, currentPage, pageSize int) PaginationResult {
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	currentPage = max(currentPage, 1)
	if totalPages > 0 {
		currentPage = min(currentPage, totalPages)
	}

	return PaginationResult{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		PageSize:    pageSize,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
		PrevPage:    max(currentPage-1, 1),
		NextPage:    max(min(currentPage+1, totalPages), 1),
	}
}
