package schema

import (
	"fmt"
	"slices"

	"listing-engine/internal/diagnostic"
)

// GlobalScope names the "all categories" table in diagnostics.
const GlobalScope = "*"

// Classification is the classified form of one schema Document.
type Classification struct {
	marketplace string
	country     string
	version     string
	languages   []string
	global      Table
	categories  map[string]Table
	order       []string
	required    map[string][]string
	diags       diagnostic.Diagnostics
}

// Classify walks every global and category-scoped field of doc.
func Classify(doc *Document) *Classification {
	c := &Classification{
		marketplace: doc.Marketplace,
		country:     doc.Country,
		version:     doc.Version,
		languages:   slices.Clone(doc.Languages),
		categories:  make(map[string]Table, len(doc.Categories)),
		required:    make(map[string][]string, len(doc.Required)),
	}

	langs := newLanguageSet(doc.Languages)

	c.global = classifyFields(langs, doc.Fields)

	for _, cat := range doc.Categories {
		if _, dup := c.categories[cat.Name]; !dup {
			c.order = append(c.order, cat.Name)
		}

		c.categories[cat.Name] = classifyFields(langs, cat.Fields)
	}

	for cat, ids := range doc.Required {
		c.required[cat] = slices.Clone(ids)
	}

	return c
}

// Failed returns the degraded classification for a schema that could not be
// loaded: every table is empty and the cause is recorded as an error.
func Failed(marketplace, country string, cause error) *Classification {
	c := &Classification{
		marketplace: marketplace,
		country:     country,
		categories:  map[string]Table{},
		required:    map[string][]string{},
	}

	c.diags.AddError(diagnostic.CodeSchemaUnavailable,
		fmt.Sprintf("schema for %s/%s unavailable: %v", marketplace, country, cause), GlobalScope, "")

	return c
}

func classifyFields(langs languageSet, fields Fields) Table {
	cv := &classifier{langs: langs, out: make(map[string]FieldFormat, len(fields))}

	for _, f := range fields {
		langs.walk(f.Name, f.Node, cv)
	}

	return Table{formats: cv.out}
}

// classifier is the Visitor that assigns formats to leaves.
type classifier struct {
	langs languageSet
	out   map[string]FieldFormat
}

func (c *classifier) set(path string, f FieldFormat) {
	if _, seen := c.out[path]; !seen {
		c.out[path] = f
	}
}

func (c *classifier) VisitLanguageContainer(path string, _ *Node) {
	c.set(path, FormatMultiLangObject)
}

func (c *classifier) VisitMeasurementContainer(path string, _ *Node) {
	c.set(path, FormatMeasurementObject)
}

func (c *classifier) VisitSequence(path string, n *Node) {
	switch c.langs.shapeOf(n.Items) {
	case ShapeLanguageContainer:
		c.set(path, FormatMultiLangArray)
	case ShapeLeaf:
		c.set(path, FormatPlainArray)
	default:
		// Sequences of structured items are shipped as-is.
		c.set(path, FormatScalar)
	}
}

func (c *classifier) VisitContainer(path string, n *Node) {
	for _, f := range n.Properties {
		c.langs.walk(path+"."+f.Name, f.Node, c)
	}
}

func (c *classifier) VisitLeaf(path string, n *Node) {
	if n != nil && len(n.Enum) > 0 {
		c.set(path, FormatEnum)
		return
	}

	c.set(path, FormatScalar)
}

// Marketplace returns the schema's marketplace.
func (c *Classification) Marketplace() string { return c.marketplace }

// Country returns the schema's country.
func (c *Classification) Country() string { return c.country }

// Version returns the schema version.
func (c *Classification) Version() string { return c.version }

// Languages returns the declared language codes.
func (c *Classification) Languages() []string { return slices.Clone(c.languages) }

// Diagnostics returns what was recorded while building the classification.
func (c *Classification) Diagnostics() diagnostic.Diagnostics { return c.diags }

// IsEmpty returns true if nothing was classified.
func (c *Classification) IsEmpty() bool {
	if !c.global.IsEmpty() {
		return false
	}

	for _, t := range c.categories {
		if !t.IsEmpty() {
			return false
		}
	}

	return true
}

// Global returns the "all categories" table.
func (c *Classification) Global() Table { return c.global }

// Categories returns the category names in document order.
func (c *Classification) Categories() []string { return slices.Clone(c.order) }

// HasCategory returns true if the schema declares category.
func (c *Classification) HasCategory(category string) bool {
	_, ok := c.categories[category]
	return ok
}

// ForCategory returns the table for one category, falling back to the
// global table for attributes the category does not declare.
func (c *Classification) ForCategory(category string) Table {
	cat, ok := c.categories[category]
	if !ok {
		return c.global
	}

	return c.global.Overlay(cat)
}

// RequiredFor returns the attribute ids the schema marks as required for
// category, followed by those required in every category.
func (c *Classification) RequiredFor(category string) []string {
	out := slices.Clone(c.required[GlobalScope])

	for _, id := range c.required[category] {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}

	return out
}

// Flatten merges the global table and every category table into one.
// The first classification seen for an attribute wins, global first, then
// categories in document order; a later different shape is a warning.
func (c *Classification) Flatten() (Table, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	out := make(map[string]FieldFormat)
	origin := make(map[string]string)

	merge := func(scope string, t Table) {
		for _, id := range t.Names() {
			f := t.formats[id]

			prev, seen := out[id]
			if !seen {
				out[id] = f
				origin[id] = scope

				continue
			}

			if prev != f {
				diags.AddWarning(diagnostic.CodeShapeConflict,
					fmt.Sprintf("classified as %s in %s, keeping %s from %s", f, scope, prev, origin[id]),
					scope, id)
			}
		}
	}

	merge(GlobalScope, c.global)

	for _, name := range c.order {
		merge(name, c.categories[name])
	}

	return Table{formats: out}, diags
}
