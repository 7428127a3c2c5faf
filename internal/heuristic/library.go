package heuristic

import (
	"errors"
	"fmt"
	"slices"

	"listing-engine/internal/common"
	"listing-engine/internal/match"
	"listing-engine/internal/record"
)

// ErrUnknownHeuristic is returned when a rule names a heuristic that is not registered.
var ErrUnknownHeuristic = errors.New("unknown heuristic")

// Heuristic extracts one attribute value. The boolean is false when no value
// could be found.
type Heuristic interface {
	Extract(rec record.Record, ctx Context, p Param) (any, bool)
}

// Func adapts a plain function to the Heuristic interface.
type Func func(rec record.Record, ctx Context, p Param) (any, bool)

// Extract calls f.
func (f Func) Extract(rec record.Record, ctx Context, p Param) (any, bool) {
	return f(rec, ctx, p)
}

// Strategy groups heuristics by how they find a value.
type Strategy int

const (
	StrategyDirectFallback Strategy = iota
	StrategyTextNumeric
	StrategyUnitNormalizing
	StrategyDerived
	StrategySegmentDecomposition
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyDirectFallback:
		return "direct-fallback"
	case StrategyTextNumeric:
		return "text-numeric"
	case StrategyUnitNormalizing:
		return "unit-normalizing"
	case StrategyDerived:
		return "derived"
	case StrategySegmentDecomposition:
		return "segment-decomposition"
	default:
		return common.UnknownStr
	}
}

// Entry is one registered heuristic.
type Entry struct {
	Name        string
	Strategy    Strategy
	Description string
	Heuristic   Heuristic
}

// Library is the fixed registry of heuristics. It is read-only after
// construction and safe for concurrent use.
type Library struct {
	entries map[string]Entry
}

// NewLibrary returns a library holding every built-in heuristic.
func NewLibrary() *Library {
	lib := &Library{entries: make(map[string]Entry, len(builtins))}
	for _, e := range builtins {
		lib.entries[e.Name] = e
	}

	return lib
}

// Lookup returns the heuristic registered under name.
func (l *Library) Lookup(name string) (Heuristic, bool) {
	e, ok := l.entries[name]
	if !ok {
		return nil, false
	}

	return e.Heuristic, true
}

// Has returns true if a heuristic with the given name exists.
func (l *Library) Has(name string) bool {
	_, ok := l.entries[name]
	return ok
}

// Entry returns the registry entry for name.
func (l *Library) Entry(name string) (Entry, bool) {
	e, ok := l.entries[name]
	return e, ok
}

// Names returns all heuristic names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.entries))
	for name := range l.entries {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Suggest returns the registered name closest to a misspelled one.
func (l *Library) Suggest(name string) (string, bool) {
	return match.Closest(name, l.Names(), match.DefaultThreshold)
}

// Extract runs the named heuristic. A blank result counts as no value. A
// panicking heuristic is reported as an error instead of crashing the caller.
func (l *Library) Extract(name string, rec record.Record, ctx Context, p Param) (value any, found bool, err error) {
	h, ok := l.Lookup(name)
	if !ok {
		if hint, ok := l.Suggest(name); ok {
			return nil, false, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownHeuristic, name, hint)
		}

		return nil, false, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
	}

	defer func() {
		if r := recover(); r != nil {
			value, found = nil, false
			err = fmt.Errorf("heuristic %q failed: %v", name, r)
		}
	}()

	value, found = h.Extract(rec, ctx, p)
	if !found || common.IsBlank(value) {
		return nil, false, nil
	}

	return value, true, nil
}
