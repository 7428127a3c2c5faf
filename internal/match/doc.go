// Package match provides name normalization and edit-distance scoring used to
// suggest the intended attribute id or heuristic name when a rule names one
// that does not exist.
//
// Key functions:
//   - NormalizeName: folds camelCase, snake_case and kebab-case to one form
//   - Levenshtein: computes edit distance between strings
//   - Closest: picks the best-scoring candidate above a threshold
package match
