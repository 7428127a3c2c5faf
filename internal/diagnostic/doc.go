// Package diagnostic provides structured errors, warnings and informational
// notes collected while resolving attributes and building feed payloads.
//
// Nothing in the engine fails fast on a single attribute. Problems are
// appended to a Diagnostics value and travel with the result, so a caller
// can decide whether a record is fit for submission.
//
// Key capabilities:
//   - Unresolved required attribute errors
//   - Dangling conditional-required warnings
//   - Schema classification failures and shape conflicts
//   - Format conversion mismatches
package diagnostic
