package collection

import (
	"sync"

	"github.com/arthur-debert/nanotable/nanotable/query"
	"github.com/arthur-debert/nanotable/types"
)

// Table is the view state of one admin table: the criteria in effect, the
// pager, and the collection's selection.
type Table[T types.Record[T]] struct {
	mu       sync.Mutex
	c        *Collection[T]
	criteria types.Criteria
	pager    *query.Pager
}

// NewTable binds a table to c; a non-positive pageSize means the default
func NewTable[T types.Record[T]](c *Collection[T], pageSize int) *Table[T] {
	return &Table[T]{c: c, pager: query.NewPager(pageSize)}
}

// Collection returns the bound collection
func (t *Table[T]) Collection() *Collection[T] { return t.c }

// Criteria returns the filter in effect
func (t *Table[T]) Criteria() types.Criteria {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.criteria
}

// SetCriteria changes the filter and returns to the first page
func (t *Table[T]) SetCriteria(c types.Criteria) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.criteria = c
	t.pager.Reset()
}

// SetPage moves to page
func (t *Table[T]) SetPage(page int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pager.SetPage(page)
}

// SetPageSize changes the page size and returns to the first page
func (t *Table[T]) SetPageSize(size int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pager.SetPageSize(size)
}

// Next moves to the next page when there is one
func (t *Table[T]) Next() {
	total := len(t.Filtered())
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pager.Next(total)
}

// Prev moves to the previous page
func (t *Table[T]) Prev() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pager.Prev()
}

// Filtered returns every record matching the criteria
func (t *Table[T]) Filtered() []T {
	return query.Filter(t.c.All(), t.Criteria())
}

// View returns the visible page. When deletions shrink the filtered set
// below the current page, the table steps back to its last page.
func (t *Table[T]) View() types.Page[T] {
	filtered := t.Filtered()

	t.mu.Lock()
	defer t.mu.Unlock()
	if last := query.DisplayPageCount(len(filtered), t.pager.Size()) - 1; t.pager.Page() > last {
		t.pager.SetPage(last)
	}
	return query.Paginate(filtered, t.pager)
}

// SelectAllVisible selects exactly the records on the visible page
func (t *Table[T]) SelectAllVisible() {
	t.c.Selection().SelectAll(types.IDs(t.View().Items))
}

// ToggleAllVisible behaves like a select-all checkbox: it clears the
// selection when the whole page is already selected, and selects the page
// otherwise.
func (t *Table[T]) ToggleAllVisible() {
	visible := types.IDs(t.View().Items)
	if t.c.Selection().ContainsAll(visible) {
		t.c.Selection().Clear()
		return
	}
	t.c.Selection().SelectAll(visible)
}

// DeleteSelected removes every selected record and clears the selection
func (t *Table[T]) DeleteSelected() int {
	removed := t.c.RemoveMany(t.c.Selection().IDs())
	t.c.Selection().Clear()
	return removed
}
