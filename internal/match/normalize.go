package match

import (
	"strings"
	"unicode"
)

// NormalizeName normalizes an attribute id or rule type for fuzzy matching:
// camelCase is split, separators (_, -, ., space) are dropped and the result
// is lower-cased. "shippingWeight", "shipping_weight" and "Shipping-Weight"
// all become "shippingweight".
func NormalizeName(s string) string {
	return strings.ToLower(strings.Join(tokenize(s), ""))
}

// NormalizeNameWithSuffixStrip normalizes and drops one trailing unit or
// identifier token, so "assembledProductWeightLbs" matches
// "assembledProductWeight".
func NormalizeNameWithSuffixStrip(s string) string {
	normalized := NormalizeName(s)

	// Longer suffixes first so "ids" wins over "id".
	for _, suffix := range []string{"value", "text", "lbs", "ids", "url", "id", "lb", "kg", "in", "cm"} {
		if strings.HasSuffix(normalized, suffix) && len(normalized) > len(suffix) {
			return strings.TrimSuffix(normalized, suffix)
		}
	}

	return normalized
}

func tokenize(s string) []string {
	if s == "" {
		return nil
	}

	var (
		tokens  []string
		current strings.Builder
	)

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsToken(runes, i) {
			flush()
		}

		current.WriteRune(r)
	}

	flush()

	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

// startsToken reports a lower-to-upper transition ("productName") or the end
// of an acronym ("URLPath" splits before 'P').
func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
