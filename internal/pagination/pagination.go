// Package pagination turns page, page_size and sort query parameters into
// gorm scopes and wraps result pages for the JSON API.
package pagination

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PageRequest holds paging and ordering parameters parsed from query strings.
// Sort names one column; a leading "-" orders it descending.
type PageRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Sort     string `form:"sort"`
}

// Defaults fills in page 1 and the default page size when they are unset,
// and clamps oversized pages for callers that skip binding validation.
func (p *PageRequest) Defaults() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// OrderClause resolves Sort against the sortable columns. An empty Sort
// yields fallback; a column outside sortable is an error.
func (p *PageRequest) OrderClause(sortable []string, fallback string) (string, error) {
	if p.Sort == "" {
		return fallback, nil
	}
	column, direction := strings.TrimPrefix(p.Sort, "-"), "ASC"
	if strings.HasPrefix(p.Sort, "-") {
		direction = "DESC"
	}
	if !slices.Contains(sortable, column) {
		return "", fmt.Errorf("cannot sort by %q: must be one of %s", column, strings.Join(sortable, ", "))
	}
	// Ties fall back to creation order so pages stay stable.
	return column + " " + direction + ", created_at DESC", nil
}

// PageResponse wraps a page of items with paging metadata.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResponse builds a PageResponse. A nil slice is reported as empty.
func NewPageResponse[T any](data []T, req PageRequest, totalItems int64) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	return PageResponse[T]{
		Data:       data,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalItems: totalItems,
		TotalPages: int(math.Ceil(float64(totalItems) / float64(req.PageSize))),
	}
}

// Paginate returns a gorm scope applying OFFSET and LIMIT for req.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PageSize)
	}
}
