package service

import "github.com/skillbridge/exchange-system/internal/core/ports"

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// normalizePage applies the default and cap to raw page/limit parameters.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// newPagination builds the page metadata for a result set of total items.
func newPagination(total int64, page, limit int) ports.Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return ports.Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1 && total > 0,
	}
}

// pageSlice cuts one page out of a fully materialised result list.
func pageSlice[T any](items []T, page, limit int) []T {
	skip := (page - 1) * limit
	if skip >= len(items) {
		return []T{}
	}
	end := skip + limit
	if end > len(items) {
		end = len(items)
	}
	return items[skip:end]
}
