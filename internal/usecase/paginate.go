package usecase

const defaultPerPage = 10

// Page is one slice of a listing plus the numbers a pager needs.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Paginate returns the 1-based page of items. Out-of-range pages are clamped
// to the nearest existing one.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	total := len(items)
	totalPages := (total + perPage - 1) / perPage
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * perPage
	end := min(start+perPage, total)
	out := make([]T, 0, max(end-start, 0))
	if start < total {
		out = append(out, items[start:end]...)
	}
	return Page[T]{
		Items:      out,
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}
