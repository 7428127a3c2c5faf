package feed

import "encoding/json"

// Envelope is the item feed payload.
type Envelope struct {
	Header Header `json:"MPItemFeedHeader"`
	Items  []Item `json:"MPItem"`
}

// Header carries the feed-level metadata.
type Header struct {
	Version      string   `json:"version"`
	FeedID       string   `json:"feedId,omitempty"`
	BusinessUnit string   `json:"businessUnit"`
	Locale       []string `json:"locale"`
	SubCategory  string   `json:"subCategory,omitempty"`
}

// Item is one listing: the always-visible attributes and the
// category-scoped ones, keyed by category.
type Item struct {
	Orderable map[string]any            `json:"Orderable"`
	Visible   map[string]map[string]any `json:"Visible"`
}

// JSON renders the envelope with two-space indentation. Map keys are sorted,
// so equal envelopes render identically.
func (e *Envelope) JSON() ([]byte, error) {
	return json.MarshalIndent(e, "", "  ")
}
