package schema

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-engine/internal/diagnostic"
)

func loadFixture(t *testing.T) *Classification {
	t.Helper()

	doc, err := LoadFile("testdata/walmart_ca.yaml")
	require.NoError(t, err)

	return Classify(doc)
}

func TestClassifyPriority(t *testing.T) {
	c := loadFixture(t)

	tests := []struct {
		field string
		want  FieldFormat
	}{
		{"sku", FormatScalar},
		{"productName", FormatMultiLangObject},
		{"keyFeatures", FormatMultiLangArray},
		{"shippingWeight", FormatMeasurementObject},
		{"additionalImageUrls", FormatPlainArray},
		{"condition", FormatEnum},
		{"price.amount", FormatScalar},
		{"price.currency", FormatEnum},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, ok := c.Global().Format(tt.field)
			require.True(t, ok, spew.Sdump(c.Global().Names()))
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := c.Global().Format("price")
	assert.False(t, ok, "plain containers are descended into")
}

func TestClassifyShapes(t *testing.T) {
	str := &Node{Type: TypeString}

	tests := []struct {
		name      string
		languages []string
		node      *Node
		path      string
		want      FieldFormat
	}{
		{
			name: "undeclared iso codes",
			node: &Node{Type: TypeObject, Properties: Fields{{"en", str}, {"fr-CA", str}}},
			want: FormatMultiLangObject,
		},
		{
			name: "three letter keys are not languages",
			node: &Node{Type: TypeObject, Properties: Fields{{"min", str}, {"max", str}}},
			path: "f.min",
			want: FormatScalar,
		},
		{
			name:      "declared languages are authoritative",
			languages: []string{"en"},
			node:      &Node{Type: TypeObject, Properties: Fields{{"en", str}, {"fr", str}}},
			path:      "f.fr",
			want:      FormatScalar,
		},
		{
			name: "measurement needs exactly two keys",
			node: &Node{Type: TypeObject, Properties: Fields{{"unit", str}, {"magnitude", str}, {"note", str}}},
			path: "f.magnitude",
			want: FormatScalar,
		},
		{
			name: "untyped array",
			node: &Node{Items: str},
			want: FormatPlainArray,
		},
		{
			name: "array without items",
			node: &Node{Type: TypeArray},
			want: FormatPlainArray,
		},
		{
			name: "array of structs",
			node: &Node{Type: TypeArray, Items: &Node{Type: TypeObject, Properties: Fields{{"a", str}, {"b", str}}}},
			want: FormatScalar,
		},
		{
			name: "empty object",
			node: &Node{Type: TypeObject},
			want: FormatScalar,
		},
		{
			name: "nil node",
			node: nil,
			want: FormatScalar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(&Document{Languages: tt.languages, Fields: Fields{{Name: "f", Node: tt.node}}})

			path := tt.path
			if path == "" {
				path = "f"
			}

			got, ok := c.Global().Format(path)
			require.True(t, ok, spew.Sdump(c.Global().Formats()))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForCategory(t *testing.T) {
	c := loadFixture(t)

	furniture := c.ForCategory("Furniture")
	assert.Equal(t, FormatMultiLangObject, furniture.FormatOr("color"))
	assert.Equal(t, FormatScalar, furniture.FormatOr("pieceCount"))
	assert.Equal(t, FormatMeasurementObject, furniture.FormatOr("assembledProductWeight"))
	assert.Equal(t, FormatMultiLangObject, furniture.FormatOr("productName"), "global fields visible per category")

	decor := c.ForCategory("Decor")
	assert.Equal(t, FormatEnum, decor.FormatOr("pieceCount"))

	unknown := c.ForCategory("Garden")
	assert.Equal(t, c.Global().Len(), unknown.Len())

	assert.Equal(t, []string{"Furniture", "Decor"}, c.Categories())
	assert.True(t, c.HasCategory("Decor"))
	assert.False(t, c.HasCategory("Garden"))
}

func TestFlattenFirstSeenWins(t *testing.T) {
	c := loadFixture(t)

	flat, diags := c.Flatten()

	assert.Equal(t, FormatScalar, flat.FormatOr("pieceCount"))
	assert.Equal(t, FormatMultiLangObject, flat.FormatOr("color"))

	require.Len(t, diags.Warnings, 1, spew.Sdump(diags))
	assert.Equal(t, diagnostic.CodeShapeConflict, diags.Warnings[0].Code)
	assert.Equal(t, "pieceCount", diags.Warnings[0].AttributeID)
	assert.Equal(t, "Decor", diags.Warnings[0].Scope)
	assert.False(t, diags.HasErrors())
}

func TestRequiredFor(t *testing.T) {
	c := loadFixture(t)

	assert.Equal(t, []string{"sku", "productName", "color"}, c.RequiredFor("Furniture"))
	assert.Equal(t, []string{"sku", "productName"}, c.RequiredFor("Decor"))
}

func TestFailedClassification(t *testing.T) {
	c := Failed("walmart", "MX", errors.New("boom"))

	assert.True(t, c.IsEmpty())
	assert.True(t, c.ForCategory("Furniture").IsEmpty())
	require.True(t, c.Diagnostics().HasErrors())
	assert.Equal(t, diagnostic.CodeSchemaUnavailable, c.Diagnostics().Errors[0].Code)
}

func TestDefaultTable(t *testing.T) {
	table := DefaultTable()

	assert.False(t, table.IsEmpty())
	assert.Equal(t, FormatMeasurementObject, table.FormatOr("shippingWeight"))
	assert.Equal(t, FormatMultiLangArray, table.FormatOr("keyFeatures"))
	assert.Equal(t, FormatScalar, table.FormatOr("sku"))

	for _, name := range table.Names() {
		f, _ := table.Format(name)
		assert.True(t, f.IsValid(), name)
	}
}

func TestTableIsImmutable(t *testing.T) {
	src := map[string]FieldFormat{"a": FormatScalar}
	table := NewTable(src)

	src["a"] = FormatEnum
	table.Formats()["a"] = FormatEnum

	assert.Equal(t, FormatScalar, table.FormatOr("a"))
}

func TestFieldFormatText(t *testing.T) {
	for f := FormatScalar; f <= FormatEnum; f++ {
		got, err := ParseFieldFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	assert.Equal(t, "measurementObject", FormatMeasurementObject.String())
	assert.False(t, FormatUnknown.IsValid())

	_, err := ParseFieldFormat("blob")
	require.Error(t, err)
}
