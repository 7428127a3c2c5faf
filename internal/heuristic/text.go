package heuristic

import (
	"html"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"listing-engine/internal/record"
)

var (
	titleFields       = []string{"title", "name", "productName", "product_name"}
	descriptionFields = []string{"description", "body_html", "bodyHtml", "descriptionHtml"}

	tagPattern    = regexp.MustCompile(`<[^>]*>`)
	spacePattern  = regexp.MustCompile(`\s+`)
	listItemRegex = regexp.MustCompile(`(?is)<li[^>]*>(.*?)</li>`)
)

// numberWords maps spelled-out counts used in listing copy.
var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
	"single": 1, "double": 2, "triple": 3,
}

func title(rec record.Record) string {
	return rec.Text(titleFields...)
}

// description returns the record description with markup removed.
func description(rec record.Record) string {
	return stripHTML(rec.Text(descriptionFields...))
}

// searchText is title and description joined, used by vocabulary scans.
func searchText(rec record.Record) string {
	return strings.TrimSpace(title(rec) + " " + description(rec))
}

func stripHTML(s string) string {
	s = tagPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)

	return collapseSpaces(s)
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
}

// titleCase builds a caser per call: a cases.Caser keeps state and must
// not be shared between goroutines.
func titleCase(s string) string {
	return cases.Title(language.English).String(strings.ToLower(s))
}

// truncateWords cuts s to at most max bytes on a word boundary, or on a rune
// boundary when the text has no spaces.
func truncateWords(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}

	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}

	cut := s[:max]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}

	return strings.TrimSpace(cut)
}

// compiledVocabulary is an ordered list of canonical terms with one
// case-insensitive word-boundary pattern per term. Order decides which term
// wins when several occur in the same text.
type compiledVocabulary struct {
	terms    []string
	patterns []*regexp.Regexp
}

func compileVocabulary(terms ...string) compiledVocabulary {
	cv := compiledVocabulary{terms: terms, patterns: make([]*regexp.Regexp, len(terms))}
	for i, t := range terms {
		cv.patterns[i] = regexp.MustCompile(`(?i)(^|[^\pL\pN])` + regexp.QuoteMeta(t) + `($|[^\pL\pN])`)
	}

	return cv
}

// first returns the first vocabulary term, in vocabulary order, found in text.
func (cv compiledVocabulary) first(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	for i, p := range cv.patterns {
		if p.MatchString(text) {
			return cv.terms[i], true
		}
	}

	return "", false
}

// all returns every vocabulary term found in text, in vocabulary order.
func (cv compiledVocabulary) all(text string) []string {
	var out []string

	for i, p := range cv.patterns {
		if p.MatchString(text) {
			out = append(out, cv.terms[i])
		}
	}

	return out
}

// canonical maps free-form input onto a vocabulary term, case-insensitively.
func (cv compiledVocabulary) canonical(s string) (string, bool) {
	for _, t := range cv.terms {
		if strings.EqualFold(strings.TrimSpace(s), t) {
			return t, true
		}
	}

	return "", false
}

// firstCapture tries patterns in order and returns the first capture group
// of the first pattern that matches.
func firstCapture(text string, patterns []*regexp.Regexp) (string, bool) {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); len(m) > 1 {
			return m[1], true
		}
	}

	return "", false
}

// parseCount reads a digit string or a spelled-out number.
func parseCount(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, ok := numberWords[s]; ok {
		return n, true
	}

	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}

	return n, true
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
