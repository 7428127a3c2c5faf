// Package heuristic provides the auto_generate extraction library: a fixed
// registry of named, pure functions that derive an attribute value from a
// channel record, a resolution context and a per-rule parameter.
//
// Every heuristic is total. When it cannot find a value it reports "no
// value" and the resolver decides whether that matters.
//
// # Strategies
//
//   - Direct field with fallback: explicit field, then the custom attribute
//     bag, then a vocabulary scan over title and description.
//   - Numeric extraction: regular-expression cascades over free text, first
//     matching pattern wins, optional default.
//   - Unit normalizing: weights and dimensions read from several fields and
//     units and converted to one canonical unit.
//   - Derived: values computed from context and parameters, such as prices
//     and sanitized identifiers.
//   - Segment decomposition: titles of the form "<A> and <B> Set of N" split
//     into canonical furniture items.
package heuristic
