package heuristic

import (
	"regexp"
	"strconv"

	"listing-engine/internal/record"
)

// weightSource pairs a value field with the field naming its unit.
type weightSource struct {
	value string
	unit  string
	// fixed is the unit implied by the field name, e.g. Shopify "grams".
	fixed string
}

var (
	shippingWeightSources = []weightSource{
		{value: "packageWeight", unit: "packageWeightUnit"},
		{value: "shippingWeight", unit: "shippingWeightUnit"},
		{value: "package.weight", unit: "package.weightUnit"},
		{value: "weight", unit: "weightUnit"},
		{value: "variants[0].weight", unit: "variants[0].weight_unit"},
		{value: "grams", fixed: "g"},
		{value: "variants[0].grams", fixed: "g"},
	}
	productWeightSources = []weightSource{
		{value: "productWeight", unit: "productWeightUnit"},
		{value: "netWeight", unit: "netWeightUnit"},
		{value: "assembledWeight", unit: "assembledWeightUnit"},
		{value: "weight", unit: "weightUnit"},
		{value: "attributes.weight", unit: "attributes.weightUnit"},
	}

	weightPattern = regexp.MustCompile(
		`(?i)\b(?:weighs|weight|net weight)\D{0,10}?(\d+(?:\.\d+)?)\s*(lbs?|pounds?|kgs?|kilograms?|oz|ounces?|g|grams?)\b`)
	// dimensionsPattern matches "80 x 35 x 33 in" and "80"L x 35"W x 33"H".
	dimensionsPattern = regexp.MustCompile(
		`(?i)(\d+(?:\.\d+)?)\s*(?:"|in|cm|mm)?\s*l?\s*[x×]\s*(\d+(?:\.\d+)?)\s*(?:"|in|cm|mm)?\s*w?\s*[x×]\s*(\d+(?:\.\d+)?)\s*("|inches|inch|in|cm|mm)?\s*h?\b`)
)

// Dimension indexes into a parsed L x W x H triple.
const (
	dimLength = iota
	dimWidth
	dimHeight
)

// weightFrom returns the first weight found in sources converted to unit.
// A value without a unit is read in sourceUnit.
func weightFrom(rec record.Record, sources []weightSource, sourceUnit, unit string) (float64, bool) {
	for _, s := range sources {
		n, ok := rec.Number(s.value)
		if !ok || n <= 0 {
			continue
		}

		from := s.fixed
		if from == "" && s.unit != "" {
			from = rec.Text(s.unit)
		}

		if from == "" {
			from = sourceUnit
		}

		if v, ok := ConvertWeight(n, from, unit); ok {
			return v, true
		}
	}

	return 0, false
}

// extractShippingWeight reads the package weight in param unit, else the
// context weight unit, else lb.
// Values without a unit field are taken to be in param source_unit, which
// defaults to the target unit.
func extractShippingWeight(rec record.Record, ctx Context, p Param) (any, bool) {
	unit := p.StringOr("unit", ctx.unit(ValueWeightUnit, "lb"))

	if v, ok := weightFrom(rec, shippingWeightSources, p.StringOr("source_unit", unit), unit); ok {
		return v, true
	}

	return nil, false
}

// extractProductWeight reads the item weight from fields, then from phrases
// like "weighs 45 lbs".
func extractProductWeight(rec record.Record, ctx Context, p Param) (any, bool) {
	unit := p.StringOr("unit", ctx.unit(ValueWeightUnit, "lb"))

	if v, ok := weightFrom(rec, productWeightSources, p.StringOr("source_unit", unit), unit); ok {
		return v, true
	}

	m := weightPattern.FindStringSubmatch(searchText(rec))
	if len(m) < 3 {
		return nil, false
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, false
	}

	return ConvertWeight(n, m[2], unit)
}

// dimension builds a heuristic for one assembled dimension. Fields are tried
// first, with dimensionUnit (default param source_unit, then in), then an
// "L x W x H" phrase in title or description.
func dimension(idx int, fields ...string) Func {
	paths := fieldPaths(fields...)

	return func(rec record.Record, ctx Context, p Param) (any, bool) {
		unit := p.StringOr("unit", ctx.unit(ValueLengthUnit, "in"))

		if n, ok := rec.Number(paths...); ok && n > 0 {
			from := rec.Text(fieldPaths("dimensionUnit", "dimensionsUnit", "dimensions.unit")...)
			if from == "" {
				from = p.StringOr("source_unit", unit)
			}

			return ConvertLength(n, from, unit)
		}

		m := dimensionsPattern.FindStringSubmatch(searchText(rec))
		if len(m) < 4 {
			return nil, false
		}

		n, err := strconv.ParseFloat(m[1+idx], 64)
		if err != nil {
			return nil, false
		}

		from := m[4]
		if from == "" {
			from = p.StringOr("source_unit", "in")
		}

		return ConvertLength(n, from, unit)
	}
}
