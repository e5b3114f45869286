package types

import "time"

// Record is the contract every stored entity satisfies. T is the concrete
// record type itself, so WithID can hand back a typed copy:
//
//	type User struct{ ID string }
//	func (u User) GetID() string          { return u.ID }
//	func (u User) WithID(id string) User  { u.ID = id; return u }
type Record[T any] interface {
	// GetID returns the record identifier, unique within its collection
	GetID() string

	// WithID returns a copy of the record carrying the given identifier
	WithID(id string) T
}

// Statused is implemented by records that carry an enumerated status
type Statused[T any] interface {
	Record[T]

	// GetStatus returns the current status value
	GetStatus() string

	// WithStatus returns a copy of the record in the given status
	WithStatus(status string) T
}

// Transition describes a status change applied through a named action
type Transition struct {
	Action string
	From   string
	To     string
	At     time.Time
	Note   string
}

// TransitionHook lets a record update its side fields (resolution notes,
// completion dates, progress) when a transition is applied. The hook runs
// after the status has been set.
type TransitionHook[T any] interface {
	OnTransition(t Transition) T
}

// Validator is implemented by records that check their own invariants
type Validator interface {
	Validate() error
}

// Searchable exposes the text fields matched by Criteria.TextQuery
type Searchable interface {
	SearchText() []string
}

// Actor exposes the names matched by Criteria.ActorName
type Actor interface {
	ActorNames() []string
}

// Amounted exposes the value matched by Criteria.Amount
type Amounted interface {
	GetAmount() float64
}

// Timestamped exposes the timestamp matched by Criteria.Dates.
// The value is an ISO-8601 string as stored on the record.
type Timestamped interface {
	Timestamp() string
}

// AmountRange is an inclusive numeric bound
type AmountRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DateRange is an inclusive time bound. A zero Start or End leaves that
// side open.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Criteria configures how records are filtered.
// Every field left at its zero value imposes no constraint.
type Criteria struct {
	// Status matches GetStatus exactly
	Status string `json:"status,omitempty"`

	// TextQuery is a case-insensitive substring matched against SearchText
	TextQuery string `json:"textQuery,omitempty"`

	// ActorName matches any of ActorNames exactly
	ActorName string `json:"actorName,omitempty"`

	// Amount bounds GetAmount inclusively
	Amount *AmountRange `json:"amountRange,omitempty"`

	// Dates bounds Timestamp inclusively
	Dates *DateRange `json:"dateRange,omitempty"`
}

// IsZero reports whether the criteria would match every record
func (c Criteria) IsZero() bool {
	return c.Status == "" && c.TextQuery == "" && c.ActorName == "" && c.Amount == nil && c.Dates == nil
}

// Page is one visible slice of a filtered collection
type Page[T any] struct {
	Items     []T `json:"items"`
	Page      int `json:"page"`
	Size      int `json:"size"`
	Total     int `json:"total"`
	PageCount int `json:"pageCount"`
}

// IDs returns the identifiers of the page items in order
func IDs[T Record[T]](items []T) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.GetID()
	}
	return ids
}
