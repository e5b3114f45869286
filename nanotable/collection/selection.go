package collection

import "sync"

// Selection is the set of record ids checked for bulk actions.
// Ids are kept in the order they were selected.
type Selection struct {
	mu  sync.Mutex
	ids []string
	set map[string]struct{}
}

// NewSelection returns an empty selection
func NewSelection() *Selection {
	return &Selection{set: make(map[string]struct{})}
}

// Toggle adds id when absent and removes it when present
func (s *Selection) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.set[id]; ok {
		s.remove(id)
		return
	}
	s.add(id)
}

// SelectAll replaces the selection with ids. Select-all checkboxes scope it
// to the visible page.
func (s *Selection) SelectAll(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = nil
	s.set = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.add(id)
	}
}

// Clear empties the selection
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = nil
	s.set = make(map[string]struct{})
}

// Drop removes the given ids; unknown ids are ignored
func (s *Selection) Drop(ids ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		s.remove(id)
	}
}

// Retain keeps only the ids for which keep returns true
func (s *Selection) Retain(keep func(id string) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range append([]string(nil), s.ids...) {
		if !keep(id) {
			s.remove(id)
		}
	}
}

// Contains reports whether id is selected
func (s *Selection) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.set[id]
	return ok
}

// ContainsAll reports whether every id is selected and there is at least
// one; it drives the state of a select-all checkbox.
func (s *Selection) ContainsAll(ids []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if _, ok := s.set[id]; !ok {
			return false
		}
	}
	return true
}

// IDs returns the selected ids in selection order
func (s *Selection) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ids...)
}

// Len returns the number of selected ids
func (s *Selection) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

func (s *Selection) add(id string) {
	if _, ok := s.set[id]; ok {
		return
	}
	s.set[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s *Selection) remove(id string) {
	if _, ok := s.set[id]; !ok {
		return
	}
	delete(s.set, id)
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
}
