// Package resolve executes a rule set against a source record.
//
// Resolution runs in two passes. The first evaluates every rule on its own
// and keeps the outcome by attribute id; the second decides which
// attributes are required, reading conditional dependencies from the
// first-pass outcomes only. The result therefore does not depend on rule
// order.
//
// Nothing here fails a record: rules that produce no value are omitted,
// required ones are reported as errors and clear Success.
package resolve
