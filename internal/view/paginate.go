package view

import "slices"

const (
	// DefaultPageSize is the page size a view starts with.
	DefaultPageSize = 10

	// DefaultPageWindow is how many page links show on each side of the
	// current page.
	DefaultPageWindow = 2
)

// PageSizeOptions are the page sizes offered to users.
var PageSizeOptions = []int{10, 20, 30, 40, 50}

// PageMeta describes one page of a collection. StartItem and EndItem are
// the 1-indexed display range, both 0 for an empty collection.
type PageMeta struct {
	Page        int  `json:"page"`
	PageSize    int  `json:"pageSize"`
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	StartItem   int  `json:"startItem"`
	EndItem     int  `json:"endItem"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Page is a slice of a collection with its metadata.
type Page[T any] struct {
	Items []T      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

// TotalPages returns max(1, ceil(totalItems/pageSize)).
func TotalPages(totalItems, pageSize int) int {
	if pageSize < 1 || totalItems <= 0 {
		return 1
	}
	return (totalItems + pageSize - 1) / pageSize
}

// ClampPage bounds page to [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	return min(max(page, 1), totalPages)
}

// Paginate returns the requested page of items. Out-of-range pages clamp
// to the nearest bound and a non-positive pageSize falls back to
// DefaultPageSize, so it never fails.
func Paginate[T any](items []T, page, pageSize int) Page[T] {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := len(items)
	totalPages := TotalPages(total, pageSize)
	page = ClampPage(page, totalPages)

	start := min((page-1)*pageSize, total)
	end := min(page*pageSize, total)

	meta := PageMeta{
		Page:        page,
		PageSize:    pageSize,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
	if total > 0 {
		meta.StartItem = start + 1
		meta.EndItem = end
	}

	return Page[T]{Items: slices.Clip(items[start:end]), Meta: meta}
}

// PageLink is one entry in a page-number bar: a page or an ellipsis.
type PageLink struct {
	Number   int  `json:"number,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// PageWindow returns the page-number bar for current of totalPages: the
// first and last page always, up to delta pages either side of current,
// and an ellipsis wherever the window is not adjacent to an edge.
func PageWindow(current, totalPages, delta int) []PageLink {
	if totalPages < 1 {
		totalPages = 1
	}
	if delta < 0 {
		delta = DefaultPageWindow
	}
	current = ClampPage(current, totalPages)

	link := func(n int) PageLink {
		return PageLink{Number: n, Current: n == current}
	}

	links := []PageLink{link(1)}
	if current-delta > 2 {
		links = append(links, PageLink{Ellipsis: true})
	}
	for n := max(2, current-delta); n <= min(totalPages-1, current+delta); n++ {
		links = append(links, link(n))
	}
	if current+delta < totalPages-1 {
		links = append(links, PageLink{Ellipsis: true})
	}
	if totalPages > 1 {
		links = append(links, link(totalPages))
	}
	return links
}

// PageState is the user's page position.
type PageState struct {
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// NewPageState starts at page 1 with the given size.
func NewPageState(pageSize int) PageState {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return PageState{CurrentPage: 1, ItemsPerPage: pageSize}
}

// WithPageSize changes the page size and returns to page 1.
func (p PageState) WithPageSize(n int) PageState {
	return NewPageState(n)
}

// GoTo moves to page n, clamped to totalPages.
func (p PageState) GoTo(n, totalPages int) PageState {
	p.CurrentPage = ClampPage(n, totalPages)
	return p
}
