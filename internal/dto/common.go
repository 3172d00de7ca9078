package dto

import "math"

// Pagination is the metadata block returned with every list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes pagination metadata for a page/limit/total triple.
func NewPagination(page, limit int, total int64) Pagination {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}
}

// ListParams are the shared query parameters for all list endpoints.
// Pages are 1-based.
type ListParams struct {
	Page   int    `form:"page,default=1" binding:"omitempty,min=1"`
	Limit  int    `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
}

// Offset converts the 1-based page into a row offset.
func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
