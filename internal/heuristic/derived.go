package heuristic

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"listing-engine/internal/common"
	"listing-engine/internal/record"
)

// specialLetters covers letters that do not decompose into ASCII plus marks.
var specialLetters = strings.NewReplacer(
	"ß", "ss", "Æ", "AE", "æ", "ae", "Ø", "O", "ø", "o", "Œ", "OE", "œ", "oe",
	"Đ", "D", "đ", "d", "Ł", "L", "ł", "l", "Þ", "Th", "þ", "th",
)

var (
	identifierUnsafe = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
	keywordSplit     = regexp.MustCompile(`[^\pL\pN'-]+`)

	noAssemblyPhrases = compileVocabulary("no assembly required", "no assembly needed", "fully assembled", "comes assembled", "pre-assembled")
	assemblyPhrases   = compileVocabulary("assembly required", "requires assembly", "some assembly", "easy assembly", "assembly instructions")
	upholsteryTerms   = compileVocabulary("upholstered", "velvet", "linen", "boucle", "microfiber", "fabric", "leather", "chenille", "cushioned")
)

var stopWords = common.Set(
	"a", "an", "and", "the", "of", "for", "with", "in", "on", "to", "by", "set", "pc", "pcs",
	"piece", "pieces", "x", "&", "-", "or", "w", "your", "our",
)

// Transliterate folds accented Latin text to ASCII and drops anything that
// has no ASCII form.
func Transliterate(s string) string {
	s = specialLetters.Replace(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}

	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}

		return r
	}, out)
}

// calculatePrice computes round2(base * multiplier + addition). The base is
// Context.BasePrice, else the record price. Multiplier and addition come from
// the rule parameter, else the context, else 1 and 0.
func calculatePrice(rec record.Record, ctx Context, p Param) (any, bool) {
	base := ctx.BasePrice
	if base <= 0 {
		n, ok := rec.Number("price", "variants[0].price", "basePrice")
		if !ok || n <= 0 {
			return nil, false
		}

		base = n
	}

	multiplier, ok := p.Float("multiplier")
	if !ok {
		if multiplier, ok = ctx.Float(ValuePriceMultiplier); !ok {
			multiplier = 1
		}
	}

	addition, ok := p.Float("addition")
	if !ok {
		if addition, ok = ctx.Float(ValuePriceAddition); !ok {
			addition = 0
		}
	}

	return round2(base*multiplier + addition), true
}

// skuToIdentifier transliterates the SKU to ASCII, turns runs of unsafe
// characters into "-" and caps the length at param max_length (default 50).
func skuToIdentifier(rec record.Record, ctx Context, p Param) (any, bool) {
	sku := common.FirstNonEmpty(ctx.SKU, rec.Text("sku", "variants[0].sku"))
	if sku == "" {
		return nil, false
	}

	id := identifierUnsafe.ReplaceAllString(Transliterate(strings.TrimSpace(sku)), "-")
	id = strings.Trim(id, "-")

	if limit := p.IntOr("max_length", 50); limit > 0 && len(id) > limit {
		id = strings.TrimRight(id[:limit], "-")
	}

	if id == "" {
		return nil, false
	}

	return id, true
}

func skuPassthrough(rec record.Record, ctx Context, _ Param) (any, bool) {
	if sku := common.FirstNonEmpty(ctx.SKU, rec.Text("sku", "variants[0].sku")); sku != "" {
		return strings.TrimSpace(sku), true
	}

	return nil, false
}

func shopIdentifier(_ record.Record, ctx Context, p Param) (any, bool) {
	if ctx.ShopID != "" {
		return ctx.ShopID, true
	}

	return p.Default()
}

// fulfillmentLagTime returns handling days from the record, else param days
// (default 1).
func fulfillmentLagTime(rec record.Record, _ Context, p Param) (any, bool) {
	if n, ok := rec.Number(fieldPaths("fulfillmentLagTime", "handlingTime")...); ok && n >= 0 {
		return int(n), true
	}

	return p.IntOr("days", 1), true
}

// extractKeywords builds a comma-separated search term list from tags, then
// title words, skipping stop words, at most max_terms (default 10).
func extractKeywords(rec record.Record, _ Context, p Param) (any, bool) {
	var terms []string

	for _, tag := range rec.Strings("tags") {
		for t := range strings.SplitSeq(tag, ",") {
			if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
				terms = append(terms, t)
			}
		}
	}

	for _, w := range keywordSplit.Split(strings.ToLower(title(rec)), -1) {
		w = strings.Trim(w, "'-")
		if len(w) < 2 || isNumeric(w) {
			continue
		}

		if _, skip := stopWords[w]; skip {
			continue
		}

		terms = append(terms, w)
	}

	terms = capList(common.Dedupe(terms), p.IntOr("max_terms", 10))
	if len(terms) == 0 {
		return nil, false
	}

	return strings.Join(terms, ", "), true
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	return true
}

// yesNo renders booleans and yes/no strings as "Yes" or "No".
func yesNo(v any) (string, bool) {
	switch t := v.(type) {
	case bool:
		if t {
			return "Yes", true
		}

		return "No", true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "yes", "y", "true", "1":
			return "Yes", true
		case "no", "n", "false", "0":
			return "No", true
		}
	}

	return "", false
}

// assemblyRequired checks the explicit flag, then negative phrases before
// positive ones, since "no assembly required" contains "assembly required".
func assemblyRequired(rec record.Record, _ Context, p Param) (any, bool) {
	for _, path := range fieldPaths("assemblyRequired", "isAssemblyRequired") {
		if v, ok := rec.Lookup(path); ok {
			if yn, ok := yesNo(v); ok {
				return yn, true
			}
		}
	}

	text := searchText(rec)
	if _, ok := noAssemblyPhrases.first(text); ok {
		return "No", true
	}

	if _, ok := assemblyPhrases.first(text); ok {
		return "Yes", true
	}

	return p.Default()
}

// upholstered answers "Yes" for an explicit flag or an upholstery term.
// Absence of a term is not evidence, so there is no implicit "No".
func upholstered(rec record.Record, _ Context, p Param) (any, bool) {
	if v, ok := rec.Lookup("isUpholstered"); ok {
		if yn, ok := yesNo(v); ok {
			return yn, true
		}
	}

	if _, ok := upholsteryTerms.first(searchText(rec)); ok {
		return "Yes", true
	}

	return p.Default()
}

func ageGroup(rec record.Record, _ Context, p Param) (any, bool) {
	if v := rec.Text(fieldPaths("ageGroup", "age_group")...); v != "" {
		return titleCase(v), true
	}

	return p.StringOr("default", "Adult"), true
}
