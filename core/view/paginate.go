package view

const DefaultPageSize = 6

type Page[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
	TotalItems  int `json:"total_items"`
	PageSize    int `json:"page_size"`
}

// Paginate slices items into pages of pageSize and returns the page numbered page (1-based).
// page is clamped into [1, TotalPages]; there is always at least one (possibly empty) page.
// pageSize < 1 falls back to DefaultPageSize.
func Paginate[T any](items []T, pageSize, page int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	pageItems := make([]T, end-start)
	copy(pageItems, items[start:end])

	return Page[T]{
		Items:       pageItems,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		PageSize:    pageSize,
	}
}

func (p Page[T]) HasPrev() bool { return p.CurrentPage > 1 }

func (p Page[T]) HasNext() bool { return p.CurrentPage < p.TotalPages }
