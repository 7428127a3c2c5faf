package heuristic

import (
	"strings"

	"listing-engine/internal/record"
)

// Well-known Context.Values keys.
const (
	ValuePriceMultiplier = "price_multiplier"
	ValuePriceAddition   = "price_addition"
	ValueCurrency        = "currency"
	ValueWeightUnit      = "weight_unit"
	ValueLengthUnit      = "length_unit"
)

// Context is the read-only side channel for values that are not part of the
// source record.
type Context struct {
	SKU       string
	ShopID    string
	BasePrice float64
	Values    map[string]any
}

// Float returns a numeric side-channel value.
func (c Context) Float(key string) (float64, bool) {
	v, ok := c.Values[key]
	if !ok {
		return 0, false
	}

	return record.ToFloat(v)
}

// String returns a side-channel value rendered as a string.
func (c Context) String(key string) (string, bool) {
	v, ok := c.Values[key]
	if !ok {
		return "", false
	}

	s, ok := record.Scalar(v)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}

	return s, true
}

// unit returns a unit side-channel value or def.
func (c Context) unit(key, def string) string {
	if s, ok := c.String(key); ok {
		return s
	}

	return def
}
