// Package record models a channel product record: an open-ended key/value
// map decoded from the channel's export, addressed with dotted and indexed
// paths.
//
// # Path Syntax
//
// Paths support:
//   - Simple keys: "brand"
//   - Nested keys: "package.weight"
//   - Array elements: "images[0]"
//   - Nested array fields: "variants[1].color"
//   - Multi-dimensional arrays: "matrix[0][2]"
//
// A missing key, an out-of-range index or a type mismatch along the way
// short-circuits to "not found". Lookups never fail with an error; only
// malformed path strings do.
package record
