package heuristic

import (
	"regexp"
	"slices"
	"strings"

	"listing-engine/internal/common"
	"listing-engine/internal/record"
)

// attributeBags are the containers channels use for free-form attributes.
var attributeBags = []string{"attributes", "customAttributes", "metafields", "options"}

var (
	colorVocabulary = compileVocabulary(
		"Black", "White", "Gray", "Grey", "Beige", "Brown", "Navy", "Blue", "Green", "Red",
		"Pink", "Purple", "Yellow", "Orange", "Gold", "Silver", "Cream", "Ivory", "Tan",
		"Walnut", "Espresso", "Oak", "Natural", "Multicolor",
	)
	materialVocabulary = compileVocabulary(
		"Solid Wood", "Engineered Wood", "Faux Leather", "Leather", "Velvet", "Linen",
		"Boucle", "Microfiber", "Polyester", "Cotton", "Fabric", "Marble", "Glass",
		"Rattan", "Wicker", "Bamboo", "MDF", "Metal", "Steel", "Iron", "Aluminum", "Plastic", "Wood",
	)
	finishVocabulary = compileVocabulary(
		"Matte", "Glossy", "High Gloss", "Satin", "Distressed", "Lacquered", "Polished", "Brushed", "Weathered",
	)
	styleVocabulary = compileVocabulary(
		"Mid-Century Modern", "Contemporary", "Modern", "Farmhouse", "Rustic", "Industrial",
		"Traditional", "Scandinavian", "Bohemian", "Coastal", "Transitional", "Glam",
	)
	shapeVocabulary = compileVocabulary(
		"L-Shaped", "U-Shaped", "Rectangular", "Rectangle", "Square", "Round", "Oval", "Curved",
	)
	patternVocabulary = compileVocabulary(
		"Striped", "Floral", "Geometric", "Plaid", "Abstract", "Herringbone", "Solid",
	)
	roomVocabulary = compileVocabulary(
		"Living Room", "Bedroom", "Dining Room", "Home Office", "Office", "Kitchen",
		"Entryway", "Bathroom", "Nursery", "Outdoor",
	)
)

// shapeSynonyms folds spelling variants onto one canonical shape.
var shapeSynonyms = map[string]string{"Rectangle": "Rectangular"}

// countryCodes maps country names seen in channel data to ISO 3166 alpha-2.
var countryCodes = map[string]string{
	"china": "CN", "united states": "US", "usa": "US", "us": "US", "vietnam": "VN",
	"viet nam": "VN", "malaysia": "MY", "india": "IN", "mexico": "MX", "canada": "CA",
	"indonesia": "ID", "turkey": "TR", "italy": "IT", "poland": "PL", "taiwan": "TW",
}

var sentenceSplit = regexp.MustCompile(`[.!?;]\s+`)

// fieldPaths expands an attribute name into its explicit field and its
// attribute-bag locations, explicit fields first.
func fieldPaths(names ...string) []string {
	out := append([]string(nil), names...)

	for _, bag := range attributeBags {
		for _, n := range names {
			out = append(out, bag+"."+n)
		}
	}

	return out
}

// directOrVocabulary tries explicit fields, then the attribute bags, then a
// vocabulary scan over title and description, then the rule default.
func directOrVocabulary(fields []string, vocab compiledVocabulary) Func {
	paths := fieldPaths(fields...)

	return func(rec record.Record, _ Context, p Param) (any, bool) {
		if v := rec.Text(paths...); v != "" {
			if c, ok := vocab.canonical(v); ok {
				return c, true
			}

			return v, true
		}

		if term, ok := vocab.first(searchText(rec)); ok {
			return term, true
		}

		return p.Default()
	}
}

// direct reads the first non-blank field, then falls back to the rule default.
func direct(fields ...string) Func {
	paths := fieldPaths(fields...)

	return func(rec record.Record, _ Context, p Param) (any, bool) {
		if v := rec.Text(paths...); v != "" {
			return v, true
		}

		return p.Default()
	}
}

func extractShape(rec record.Record, ctx Context, p Param) (any, bool) {
	v, ok := directOrVocabulary([]string{"shape"}, shapeVocabulary)(rec, ctx, p)
	if s, isStr := v.(string); ok && isStr {
		if c, found := shapeSynonyms[s]; found {
			return c, true
		}
	}

	return v, ok
}

// extractRoomType returns every room named in the record.
func extractRoomType(rec record.Record, _ Context, p Param) (any, bool) {
	if rooms := rec.Strings("roomType"); len(rooms) > 0 {
		return rooms, true
	}

	if rooms := roomVocabulary.all(searchText(rec)); len(rooms) > 0 {
		// "Office" is implied by "Home Office".
		if slices.Contains(rooms, "Home Office") {
			rooms = removeTerm(rooms, "Office")
		}

		return rooms, true
	}

	return p.Default()
}

func removeTerm(terms []string, term string) []string {
	out := terms[:0:0]

	for _, t := range terms {
		if t != term {
			out = append(out, t)
		}
	}

	return out
}

func extractModelNumber(rec record.Record, ctx Context, _ Param) (any, bool) {
	if v := rec.Text(fieldPaths("modelNumber", "model", "mpn")...); v != "" {
		return v, true
	}

	if v := common.FirstNonEmpty(ctx.SKU, rec.Text("sku", "variants[0].sku")); v != "" {
		return v, true
	}

	return nil, false
}

// extractProductName collapses whitespace and trims the title to max_length
// (default 200) on a word boundary.
func extractProductName(rec record.Record, _ Context, p Param) (any, bool) {
	t := collapseSpaces(title(rec))
	if t == "" {
		return nil, false
	}

	return truncateWords(t, p.IntOr("max_length", 200)), true
}

// extractShortDescription strips markup and trims to max_length (default 4000).
func extractShortDescription(rec record.Record, _ Context, p Param) (any, bool) {
	d := description(rec)
	if d == "" {
		return nil, false
	}

	return truncateWords(d, p.IntOr("max_length", 4000)), true
}

// extractKeyFeatures returns up to count (default 5) bullet points: an
// explicit feature list, then <li> items in the description, then the
// description's leading sentences.
func extractKeyFeatures(rec record.Record, _ Context, p Param) (any, bool) {
	limit := p.IntOr("count", 5)

	for _, path := range fieldPaths("keyFeatures", "features", "bulletPoints") {
		if fs := rec.Strings(path); len(fs) > 0 {
			return capList(fs, limit), true
		}
	}

	raw := rec.Text(descriptionFields...)

	var items []string

	for _, m := range listItemRegex.FindAllStringSubmatch(raw, -1) {
		if s := stripHTML(m[1]); s != "" {
			items = append(items, s)
		}
	}

	if len(items) == 0 {
		for _, s := range sentenceSplit.Split(description(rec), -1) {
			s = strings.TrimRight(strings.TrimSpace(s), ".!?;")
			if len(s) >= 10 {
				items = append(items, s)
			}
		}
	}

	if len(items) == 0 {
		return nil, false
	}

	return capList(common.Dedupe(items), limit), true
}

func capList(items []string, limit int) []string {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}

	return items
}

// imageURLs collects image URLs from string lists, {src}/{url} objects and
// single image fields, in record order without duplicates.
func imageURLs(rec record.Record) []string {
	var urls []string

	if v := rec.Text("image", "image.src", "featuredImage.url", "mainImageUrl"); v != "" {
		urls = append(urls, v)
	}

	if raw, ok := rec.Lookup("images"); ok {
		if list, isList := raw.([]any); isList {
			for _, item := range list {
				switch t := item.(type) {
				case string:
					urls = append(urls, strings.TrimSpace(t))
				case map[string]any:
					u := record.Record(t).Text("src", "url")
					if u != "" {
						urls = append(urls, u)
					}
				}
			}
		} else {
			urls = append(urls, rec.Strings("images")...)
		}
	}

	return common.Dedupe(removeTerm(urls, ""))
}

func extractMainImage(rec record.Record, _ Context, _ Param) (any, bool) {
	if urls := imageURLs(rec); len(urls) > 0 {
		return urls[0], true
	}

	return nil, false
}

// extractAdditionalImages returns every image after the main one, at most
// max (default 10).
func extractAdditionalImages(rec record.Record, _ Context, p Param) (any, bool) {
	urls := imageURLs(rec)
	if len(urls) < 2 {
		return nil, false
	}

	return capList(urls[1:], p.IntOr("max", 10)), true
}

// extractCountryOfOrigin returns the country as given, or its alpha-2 code
// when param format is "alpha2".
func extractCountryOfOrigin(rec record.Record, _ Context, p Param) (any, bool) {
	v := rec.Text(fieldPaths("countryOfOrigin", "country_of_origin", "origin")...)
	if v == "" {
		return p.Default()
	}

	if p.StringOr("format", "") == "alpha2" {
		if code, ok := countryCodes[strings.ToLower(v)]; ok {
			return code, true
		}

		if len(v) == 2 {
			return strings.ToUpper(v), true
		}
	}

	return v, true
}

func extractCondition(rec record.Record, _ Context, p Param) (any, bool) {
	if v := rec.Text(fieldPaths("condition")...); v != "" {
		return titleCase(v), true
	}

	return p.StringOr("default", "New"), true
}
