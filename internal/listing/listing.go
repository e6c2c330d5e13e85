// Package listing implements the search and pagination applied to fetched
// collections before they are rendered as a table.
//
// Everything here is pure: results are recomputed from the input slice on
// every call.
package listing

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// DefaultPageSize is used when a non-positive page size is requested.
const DefaultPageSize = 10

// PageSizes are the rows-per-page choices offered by the table.
var PageSizes = []int{5, 10, 20, 50}

// Params selects a window of a filtered collection. Page is 1-based.
type Params struct {
	Search   string
	Page     int
	PageSize int
}

// Page is one window of a collection.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// Filter keeps the items whose name contains search, ignoring case.
// An empty search keeps everything.
func Filter[T any](items []T, search string, name func(T) string) []T {
	if search == "" {
		return append([]T(nil), items...)
	}
	folder := cases.Fold()
	needle := folder.String(search)

	var out []T
	for _, item := range items {
		if strings.Contains(folder.String(name(item)), needle) {
			out = append(out, item)
		}
	}
	return out
}

// Paginate returns the page-th window of size items.
// page < 1 is treated as 1; size < 1 uses DefaultPageSize.
// A page past the end has no items but still reports the totals.
func Paginate[T any](items []T, page, size int) Page[T] {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}

	total := len(items)
	p := Page[T]{
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: (total + size - 1) / size,
	}

	start := (page - 1) * size
	if start >= total {
		p.Items = []T{}
		return p
	}
	end := min(start+size, total)
	p.Items = append([]T(nil), items[start:end]...)
	return p
}

// Query filters items by params.Search and then paginates the result.
func Query[T any](items []T, params Params, name func(T) string) Page[T] {
	return Paginate(Filter(items, params.Search, name), params.Page, params.PageSize)
}

// HasPrev reports whether an earlier page exists.
func (p Page[T]) HasPrev() bool {
	return p.Page > 1
}

// HasNext reports whether a later page exists.
func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

// Summary renders the table footer, e.g. "11-20 of 42" or "0 of 0".
func (p Page[T]) Summary() string {
	if len(p.Items) == 0 {
		return fmt.Sprintf("0 of %d", p.Total)
	}
	first := (p.Page-1)*p.PageSize + 1
	return fmt.Sprintf("%d-%d of %d", first, first+len(p.Items)-1, p.Total)
}
