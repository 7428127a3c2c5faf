// Package feed shapes resolved attributes into marketplace item envelopes.
//
// A Profile fixes, per (marketplace, country), the header, the language and
// unit defaults, and which attributes go to the always-visible Orderable
// bucket. Everything else lands in the category-scoped Visible bucket,
// which locale-specific marketplaces emit as an empty placeholder.
package feed
