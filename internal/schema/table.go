package schema

import (
	"maps"
	"slices"
)

// Table maps attribute ids to their FieldFormat. A Table is never mutated
// after it is built and is safe for concurrent readers.
type Table struct {
	formats map[string]FieldFormat
}

// NewTable copies formats into a new Table.
func NewTable(formats map[string]FieldFormat) Table {
	return Table{formats: maps.Clone(formats)}
}

// Format returns the format for attributeID.
func (t Table) Format(attributeID string) (FieldFormat, bool) {
	f, ok := t.formats[attributeID]
	return f, ok
}

// FormatOr returns the format for attributeID or FormatScalar.
func (t Table) FormatOr(attributeID string) FieldFormat {
	if f, ok := t.formats[attributeID]; ok {
		return f
	}

	return FormatScalar
}

// Len returns the number of classified attributes.
func (t Table) Len() int {
	return len(t.formats)
}

// IsEmpty returns true if the table classifies nothing.
func (t Table) IsEmpty() bool {
	return len(t.formats) == 0
}

// Names returns the classified attribute ids, sorted.
func (t Table) Names() []string {
	return slices.Sorted(maps.Keys(t.formats))
}

// Formats returns a copy of the underlying map.
func (t Table) Formats() map[string]FieldFormat {
	return maps.Clone(t.formats)
}

// Overlay returns a table holding t's entries with top's entries on top.
func (t Table) Overlay(top Table) Table {
	out := make(map[string]FieldFormat, len(t.formats)+len(top.formats))
	maps.Copy(out, t.formats)
	maps.Copy(out, top.formats)

	return Table{formats: out}
}

// defaultFormats is the fixed fallback used when no schema is available.
// It covers the attributes whose wire shape is not a plain scalar on the
// supported marketplaces.
var defaultFormats = map[string]FieldFormat{
	"productName":             FormatMultiLangObject,
	"shortDescription":        FormatMultiLangObject,
	"brand":                   FormatMultiLangObject,
	"manufacturer":            FormatMultiLangObject,
	"keyFeatures":             FormatMultiLangArray,
	"keywords":                FormatMultiLangObject,
	"color":                   FormatMultiLangObject,
	"material":                FormatMultiLangObject,
	"finish":                  FormatMultiLangObject,
	"pattern":                 FormatMultiLangObject,
	"itemsIncluded":           FormatMultiLangArray,
	"shippingWeight":          FormatMeasurementObject,
	"weight":                  FormatMeasurementObject,
	"productWeight":           FormatMeasurementObject,
	"assembledProductLength":  FormatMeasurementObject,
	"assembledProductWidth":   FormatMeasurementObject,
	"assembledProductHeight":  FormatMeasurementObject,
	"maximumLoadWeight":       FormatMeasurementObject,
	"additionalImageUrls":     FormatPlainArray,
	"roomType":                FormatPlainArray,
	"style":                   FormatPlainArray,
	"condition":               FormatEnum,
	"countryOfOriginAssembly": FormatEnum,
	"isAssemblyRequired":      FormatEnum,
	"ageGroup":                FormatEnum,
	"shape":                   FormatEnum,
}

// DefaultTable returns the static fallback table.
func DefaultTable() Table {
	return NewTable(defaultFormats)
}
