// Package query derives the visible subset of a collection: the filter
// predicate and the pager.
package query

import (
	"github.com/arthur-debert/nanotable/types"
)

// AnyStatus is accepted as Criteria.Status and imposes no constraint,
// matching the "all" option of status selectors.
const AnyStatus = "all"

type statusReader interface {
	GetStatus() string
}

// Filter returns the records matching every set criterion.
// It never reorders and never modifies its input.
func Filter[T any](records []T, c types.Criteria) []T {
	result := make([]T, 0, len(records))
	for _, rec := range records {
		if Matches(rec, c) {
			result = append(result, rec)
		}
	}
	return result
}

// Matches reports whether a single record satisfies c. A set criterion the
// record has no way to answer (no status, no amount, no parseable
// timestamp) does not match.
func Matches(rec any, c types.Criteria) bool {
	if c.Status != "" && c.Status != AnyStatus {
		s, ok := rec.(statusReader)
		if !ok || s.GetStatus() != c.Status {
			return false
		}
	}

	if c.TextQuery != "" && !matchesSearch(rec, c.TextQuery) {
		return false
	}

	if c.ActorName != "" && !matchesActor(rec, c.ActorName) {
		return false
	}

	if c.Amount != nil {
		a, ok := rec.(types.Amounted)
		if !ok {
			return false
		}
		amount := a.GetAmount()
		if amount < c.Amount.Min || amount > c.Amount.Max {
			return false
		}
	}

	if c.Dates != nil && !matchesDates(rec, *c.Dates) {
		return false
	}

	return true
}

// matchesSearch does a case-insensitive substring search over the record's
// searchable fields
func matchesSearch(rec any, text string) bool {
	s, ok := rec.(types.Searchable)
	if !ok {
		return false
	}
	for _, field := range s.SearchText() {
		if containsFold(field, text) {
			return true
		}
	}
	return false
}

func matchesActor(rec any, name string) bool {
	a, ok := rec.(types.Actor)
	if !ok {
		return false
	}
	for _, n := range a.ActorNames() {
		if n == name {
			return true
		}
	}
	return false
}

func matchesDates(rec any, r types.DateRange) bool {
	ts, ok := rec.(types.Timestamped)
	if !ok {
		return false
	}
	t, ok := ParseTimestamp(ts.Timestamp())
	if !ok {
		return false
	}
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}
