package keeper

import "time"

// Entry is implemented by every kind of list entry the keeper can hold.
// Implementations must be plain value structs (no pointers, slices, or
// maps) so that copying the struct copies the entry.
type Entry interface {
	// Kind returns the singular kind name, e.g. "task".
	Kind() string
	// Validate checks the entry's fields. It returns a *ValidationError
	// describing the first violated constraint, or nil.
	Validate() error
	// Summary returns a one-line human rendering of the entry.
	Summary() string
	// DoneVerb returns the past participle used when the entry's done
	// flag transitions, e.g. "completed" or "purchased".
	DoneVerb() string
}

// Item is the envelope the keeper wraps around each stored entry.
type Item[T Entry] struct {
	// ID is the unique identifier, assigned by the keeper at creation.
	// IDs start at 1, increase strictly, and are never reused.
	ID int64 `json:"id"`
	// Done is the one-way lifecycle flag (completed, purchased, ...).
	Done bool `json:"done"`
	// CreatedAt is when the item was created
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is when the item was last modified
	UpdatedAt time.Time `json:"updatedAt"`
	// CompletedAt is when the done flag transitioned, if it has.
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	// Fields contains the kind-specific attributes.
	Fields T `json:"fields"`
}

// clone returns an independent copy of the item. Fields is a value
// struct per the Entry contract, so the struct copy is a deep copy.
func (it *Item[T]) clone() *Item[T] {
	cp := *it
	if it.CompletedAt != nil {
		t := *it.CompletedAt
		cp.CompletedAt = &t
	}
	return &cp
}

// QueryFilter contains parameters for filtering and paginating list queries.
type QueryFilter struct {
	// Where is an optional expression evaluated against each item.
	Where string
	// Done filters on the lifecycle flag when non-nil.
	Done *bool
	// Sort is the field name to sort by; empty keeps insertion order.
	Sort string
	// Order is the sort direction: "asc" or "desc" (default: "asc")
	Order string
	// Limit is the maximum items to return (default: 100)
	Limit int
	// Offset is the number of items to skip (default: 0)
	Offset int
}

// DefaultQueryFilter returns a QueryFilter with sensible defaults.
func DefaultQueryFilter() *QueryFilter {
	return &QueryFilter{Limit: 100}
}

// PageMeta contains pagination metadata for list responses.
type PageMeta struct {
	// Total is the number of items matching filters (before pagination)
	Total int `json:"total"`
	// Limit is the maximum items per page
	Limit int `json:"limit"`
	// Offset is the number of items skipped
	Offset int `json:"offset"`
	// Count is the number of items in the current page
	Count int `json:"count"`
}

// Page is the response envelope for list queries.
type Page[T Entry] struct {
	Items []*Item[T] `json:"items"`
	Meta  PageMeta   `json:"meta"`
}

// ListInfo provides details about a single registered list.
type ListInfo struct {
	// Name is the list name, unique within a registry
	Name string `json:"name"`
	// Kind is the entry kind the list holds
	Kind string `json:"kind"`
	// Items is the current number of live items
	Items int `json:"items"`
	// Done is the number of live items with the done flag set
	Done int `json:"done"`
	// Seeds is the number of configured seed entries
	Seeds int `json:"seeds"`
	// LastID is the highest id assigned so far (0 before any creation)
	LastID int64 `json:"lastId"`
}

// Overview summarizes all lists registered in a registry.
type Overview struct {
	Lists      []ListInfo `json:"lists"`
	Total      int        `json:"total"`
	TotalItems int        `json:"totalItems"`
	TotalDone  int        `json:"totalDone"`
}

// ErrorResponse represents a failure returned from keeper operations.
type ErrorResponse struct {
	// Error is the error message
	Error string `json:"error"`
	// Kind is the entry kind (if applicable)
	Kind string `json:"kind,omitempty"`
	// ID is the item id (if applicable)
	ID int64 `json:"id,omitempty"`
	// Code is a stable machine-readable error code
	Code string `json:"code,omitempty"`
	// Detail provides additional error context
	Detail string `json:"detail,omitempty"`
	// StatusCode is the HTTP status code
	StatusCode int `json:"statusCode,omitempty"`
	// Hint provides a user-friendly suggestion for resolving the error
	Hint string `json:"hint,omitempty"`
	// Field is the specific field that caused a validation error
	Field string `json:"field,omitempty"`
}
