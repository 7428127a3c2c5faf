package heuristic

import (
	"regexp"
	"slices"
	"strings"

	"listing-engine/internal/record"
)

// setTitlePattern matches "<A> and <B> Set of N".
var setTitlePattern = regexp.MustCompile(`(?i)^\s*(.+?)\s+(?:and|&)\s+(.+?)[\s,-]+set\s+of\s+(\d+|two|three|four|five|six)\b`)

// furnitureNouns is the item vocabulary, matched as a suffix of a segment.
var furnitureNouns = []string{
	"Coffee Table", "End Table", "Side Table", "Console Table", "Dining Table", "Accent Table",
	"Nesting Table", "Table", "TV Stand", "Media Console", "Sofa", "Loveseat", "Sectional",
	"Sleeper", "Futon", "Accent Chair", "Dining Chair", "Arm Chair", "Armchair", "Chair",
	"Recliner", "Ottoman", "Pouf", "Bench", "Bar Stool", "Counter Stool", "Stool", "Nightstand",
	"Dresser", "Chest", "Bed Frame", "Bed", "Headboard", "Bookcase", "Bookshelf", "Shelf",
	"Desk", "Cabinet", "Sideboard", "Buffet", "Mirror", "Rug", "Lamp",
}

// itemSynonyms maps variants onto canonical items. Keys are lower case.
var itemSynonyms = map[string]string{
	"couch":          "Sofa",
	"settee":         "Loveseat",
	"love seat":      "Loveseat",
	"sectional sofa": "Sectional",
	"night stand":    "Nightstand",
	"bedside table":  "Nightstand",
	"cocktail table": "Coffee Table",
	"tv console":     "TV Stand",
	"media console":  "TV Stand",
	"arm chair":      "Armchair",
	"bookshelf":      "Bookcase",
	"bed frame":      "Bed",
	"buffet":         "Sideboard",
	"pouf":           "Ottoman",
}

// itemsIncluded splits a set title into its two items. Titles without the
// "Set of N" pattern yield no value; there is no default.
func itemsIncluded(rec record.Record, _ Context, _ Param) (any, bool) {
	m := setTitlePattern.FindStringSubmatch(title(rec))
	if len(m) < 3 {
		return nil, false
	}

	var items []string

	for _, seg := range []string{m[1], m[2]} {
		if item := canonicalItem(seg); item != "" && !slices.Contains(items, item) {
			items = append(items, item)
		}
	}

	if len(items) == 0 {
		return nil, false
	}

	return items, true
}

// canonicalItem finds the item noun a segment ends with, preferring the
// longest vocabulary or synonym suffix, else the segment's last two words.
func canonicalItem(segment string) string {
	words := strings.Fields(segment)
	if len(words) == 0 {
		return ""
	}

	lower := strings.ToLower(strings.Join(words, " "))

	best, bestLen := "", 0
	consider := func(term, canonical string) {
		t := strings.ToLower(term)
		// Singular or simple plural, e.g. "Chair" and "Chairs".
		for _, form := range []string{t, t + "s"} {
			if (lower == form || strings.HasSuffix(lower, " "+form)) && len(t) > bestLen {
				best, bestLen = canonical, len(t)
			}
		}
	}

	for _, noun := range furnitureNouns {
		consider(noun, noun)
	}

	for synonym, canonical := range itemSynonyms {
		consider(synonym, canonical)
	}

	if best == "" {
		if len(words) > 2 {
			words = words[len(words)-2:]
		}

		best = titleCase(strings.Join(words, " "))
	}

	return normalizeItem(best)
}

// normalizeItem folds synonyms onto their canonical item.
func normalizeItem(item string) string {
	if c, ok := itemSynonyms[strings.ToLower(item)]; ok {
		return c
	}

	return item
}
