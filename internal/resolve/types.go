package resolve

import (
	"maps"
	"slices"

	"listing-engine/internal/diagnostic"
	"listing-engine/internal/heuristic"
	"listing-engine/internal/record"
)

// ResolvedAttributes is the outcome of resolving one record.
type ResolvedAttributes struct {
	// Values holds every attribute that produced a non-blank value.
	Values map[string]any
	// Pending lists attributes waiting on an external allocation.
	Pending []string
	// Required lists the attributes that were required, directly or through
	// a matched condition.
	Required []string
	// Success is false only when a required attribute has no value.
	Success bool

	diagnostic.Diagnostics
}

// Value returns the resolved value of attributeID.
func (r *ResolvedAttributes) Value(attributeID string) (any, bool) {
	v, ok := r.Values[attributeID]
	return v, ok
}

// IsPending returns true if attributeID awaits external allocation.
func (r *ResolvedAttributes) IsPending(attributeID string) bool {
	return slices.Contains(r.Pending, attributeID)
}

// Names returns the resolved attribute ids, sorted.
func (r *ResolvedAttributes) Names() []string {
	return slices.Sorted(maps.Keys(r.Values))
}

// Input is one record to resolve in a batch.
type Input struct {
	Record  record.Record
	Context heuristic.Context
}

// outcome is the first-pass result of one rule.
type outcome struct {
	value   any
	found   bool
	pending bool
}
