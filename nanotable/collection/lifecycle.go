package collection

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/nanotable/types"
)

// Lifecycle is the status state machine of one entity type.
// States are listed with the initial state first. Each named action moves a
// record from one of a set of source states to a single target state.
//
//	escrow := NewLifecycle("pending", "released", "refunded", "disputed", "failed").
//	    Allow("release", "released", "pending", "disputed").
//	    Allow("refund", "refunded", "pending", "disputed", "failed")
type Lifecycle struct {
	states  []string
	known   map[string]bool
	actions map[string]rule
	order   []string
	errs    []error
}

type rule struct {
	to   string
	from map[string]bool
}

// NewLifecycle creates a lifecycle over the given states; the first one is
// the initial state of new records
func NewLifecycle(states ...string) *Lifecycle {
	l := &Lifecycle{
		states:  append([]string(nil), states...),
		known:   make(map[string]bool, len(states)),
		actions: make(map[string]rule),
	}
	for _, s := range states {
		if l.known[s] {
			l.errs = append(l.errs, fmt.Errorf("duplicate state %q", s))
		}
		l.known[s] = true
	}
	if len(states) == 0 {
		l.errs = append(l.errs, fmt.Errorf("lifecycle needs at least one state"))
	}
	return l
}

// Allow registers action as moving records in any of from to to.
// Mistakes (unknown states, a reused action name) surface from Check.
func (l *Lifecycle) Allow(action, to string, from ...string) *Lifecycle {
	if _, exists := l.actions[action]; exists {
		l.errs = append(l.errs, fmt.Errorf("action %q defined twice", action))
		return l
	}
	if !l.known[to] {
		l.errs = append(l.errs, fmt.Errorf("action %q targets unknown state %q", action, to))
	}
	r := rule{to: to, from: make(map[string]bool, len(from))}
	for _, f := range from {
		if !l.known[f] {
			l.errs = append(l.errs, fmt.Errorf("action %q starts from unknown state %q", action, f))
		}
		r.from[f] = true
	}
	l.actions[action] = r
	l.order = append(l.order, action)
	return l
}

// Check reports definition errors and rejects cycles: statuses only ever
// move forward.
func (l *Lifecycle) Check() error {
	if len(l.errs) > 0 {
		return l.errs[0]
	}

	edges := make(map[string][]string)
	for _, action := range l.order {
		r := l.actions[action]
		for f := range r.from {
			edges[f] = append(edges[f], r.to)
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)
	mark := make(map[string]int)
	var visit func(s string) error
	visit = func(s string) error {
		switch mark[s] {
		case visiting:
			return fmt.Errorf("status %q is reachable from itself", s)
		case done:
			return nil
		}
		mark[s] = visiting
		for _, next := range edges[s] {
			if err := visit(next); err != nil {
				return err
			}
		}
		mark[s] = done
		return nil
	}
	for _, s := range l.states {
		if err := visit(s); err != nil {
			return err
		}
	}
	return nil
}

// Initial returns the status given to new records
func (l *Lifecycle) Initial() string {
	if len(l.states) == 0 {
		return ""
	}
	return l.states[0]
}

// States returns the statuses in declaration order
func (l *Lifecycle) States() []string {
	return append([]string(nil), l.states...)
}

// Valid reports whether status belongs to the lifecycle
func (l *Lifecycle) Valid(status string) bool {
	return l.known[status]
}

// Next returns the status reached by applying action to a record in from
func (l *Lifecycle) Next(from, action string) (string, error) {
	r, ok := l.actions[action]
	if !ok {
		return "", fmt.Errorf("%w: unknown action %q", types.ErrInvalidTransition, action)
	}
	if !r.from[from] {
		return "", fmt.Errorf("%w: cannot %s from %q", types.ErrInvalidTransition, action, from)
	}
	return r.to, nil
}

// Actions lists the actions available from status, in registration order
func (l *Lifecycle) Actions(status string) []string {
	var out []string
	for _, action := range l.order {
		if l.actions[action].from[status] {
			out = append(out, action)
		}
	}
	return out
}

// Terminal reports whether no action leaves status
func (l *Lifecycle) Terminal(status string) bool {
	return len(l.Actions(status)) == 0
}

// Terminals lists the terminal statuses, sorted
func (l *Lifecycle) Terminals() []string {
	var out []string
	for _, s := range l.states {
		if l.Terminal(s) {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
