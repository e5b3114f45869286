package query

import (
	"github.com/arthur-debert/nanotable/types"
)

// DefaultPageSize is used when no valid page size is configured
const DefaultPageSize = 10

// PageSizes are the sizes offered by page-size selectors
var PageSizes = []int{5, 10, 20, 50}

// Slice returns items[page*size : min((page+1)*size, len)].
// Out-of-range pages and non-positive sizes yield an empty slice.
func Slice[T any](items []T, page, size int) []T {
	if page < 0 || size <= 0 {
		return []T{}
	}
	start := page * size
	if start >= len(items) || start < 0 {
		return []T{}
	}
	end := start + size
	if end > len(items) || end < start {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

// PageCount returns ceil(total/size); zero when there is nothing to show
func PageCount(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// DisplayPageCount is PageCount with an empty result shown as one page
func DisplayPageCount(total, size int) int {
	if n := PageCount(total, size); n > 0 {
		return n
	}
	return 1
}

// Pager holds the current page index and size of one table
type Pager struct {
	page int
	size int
}

// NewPager creates a pager on page 0; a non-positive size means DefaultPageSize
func NewPager(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{size: size}
}

// Page returns the zero-based page index
func (p *Pager) Page() int { return p.page }

// Size returns the page size
func (p *Pager) Size() int { return p.size }

// SetPage moves to page; negative values clamp to 0
func (p *Pager) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	p.page = page
}

// SetPageSize changes the page size and always returns to the first page
func (p *Pager) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	p.size = size
	p.page = 0
}

// Reset returns to the first page
func (p *Pager) Reset() { p.page = 0 }

// Next advances one page unless already on the last page of total items
func (p *Pager) Next(total int) {
	if p.page+1 < PageCount(total, p.size) {
		p.page++
	}
}

// Prev goes back one page, stopping at 0
func (p *Pager) Prev() {
	if p.page > 0 {
		p.page--
	}
}

// Paginate returns the pager's current page over items
func Paginate[T any](items []T, p *Pager) types.Page[T] {
	return types.Page[T]{
		Items:     Slice(items, p.page, p.size),
		Page:      p.page,
		Size:      p.size,
		Total:     len(items),
		PageCount: DisplayPageCount(len(items), p.size),
	}
}
