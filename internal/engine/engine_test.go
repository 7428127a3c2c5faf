package engine

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-engine/internal/config"
	"listing-engine/internal/diagnostic"
	"listing-engine/internal/feed"
	"listing-engine/internal/heuristic"
	"listing-engine/internal/record"
	"listing-engine/internal/resolve"
	"listing-engine/internal/rules"
)

var (
	usFurniture = rules.Key{Marketplace: "walmart", Country: "US", Category: "Furniture"}
	caFurniture = rules.Key{Marketplace: "Walmart", Country: "ca", Category: "Furniture"}
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()

	cfg := config.Default()
	cfg.RulesDir = "testdata/rules"
	cfg.SchemaDir = "testdata/schemas"
	cfg.Workers = 2

	opts = append([]Option{WithBuilderOptions(feed.WithFeedID(func() string { return "feed-test" }))}, opts...)

	e, err := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), opts...)
	require.NoError(t, err)

	return e
}

func sofaRecord() record.Record {
	return record.Record{
		"title":         "Sofa and Coffee Table Set of 2",
		"vendor":        "Acme",
		"description":   "<ul><li>Navy velvet</li><li>Solid wood legs</li></ul>",
		"packageWeight": "5",
		"warranty":      map[string]any{"url": "none"},
	}
}

func codes(ds []diagnostic.Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Code + ":" + d.AttributeID
	}

	return out
}

func TestLoadsRulesDir(t *testing.T) {
	e := newTestEngine(t)

	keys := e.Keys()
	require.Len(t, keys, 2)
	assert.Equal(t, "walmart/CA/Furniture", keys[0].String())
	assert.Equal(t, "walmart/US/Furniture", keys[1].String())

	_, ok := e.RuleSet(caFurniture)
	assert.True(t, ok, "lookups are case-insensitive on marketplace and country")
}

func TestProcessWalmartUS(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.Process(context.Background(), usFurniture, sofaRecord(), heuristic.Context{SKU: "SOFA-001", BasePrice: 100})
	require.NoError(t, err)
	require.True(t, res.Success(), spew.Sdump(res.Diagnostics))

	item := res.Envelope.Items[0]
	assert.Equal(t, "SOFA-001", item.Orderable["sku"])
	assert.Equal(t, map[string]any{"en": "Sofa and Coffee Table Set of 2"}, item.Orderable["productName"])
	assert.Equal(t, 120.0, item.Orderable["price"])

	visible := item.Visible["Furniture"]
	assert.Equal(t, map[string]any{"unit": "lb", "magnitude": 5.0}, visible["weight"])
	assert.Equal(t, []any{"Navy"}, visible["color"])
	assert.Equal(t, []string{"Sofa", "Coffee Table"}, visible["itemsIncluded"])
	assert.Equal(t, "New", visible["condition"])
	assert.Equal(t, []any{map[string]any{"en": "Navy velvet"}, map[string]any{"en": "Solid wood legs"}}, visible["keyFeatures"])

	assert.Equal(t, []string{"productIdentifier"}, res.Resolved.Pending)
	assert.Equal(t, "5.0.20240517-04_26_18-api", res.Envelope.Header.Version)
	assert.Equal(t, "feed-test", res.Envelope.Header.FeedID)
}

func TestProcessSchemaRequired(t *testing.T) {
	e := newTestEngine(t)

	rec := sofaRecord()
	delete(rec, "vendor")

	res, err := e.Process(context.Background(), usFurniture, rec, heuristic.Context{SKU: "SOFA-001"})
	require.NoError(t, err)

	assert.False(t, res.Success())
	assert.Contains(t, codes(res.Diagnostics.Errors), diagnostic.CodeRequiredUnresolved+":brand")
}

func TestProcessLocaleSpecific(t *testing.T) {
	e := newTestEngine(t)

	rec := record.Record{"title": "Grey Sofa", "packageWeight": 10, "packageWeightUnit": "lb"}

	res, err := e.Process(context.Background(), caFurniture, rec, heuristic.Context{SKU: "S-CA"})
	require.NoError(t, err)

	item := res.Envelope.Items[0]
	assert.Equal(t, map[string]any{"unit": "kg", "magnitude": 4.54}, item.Orderable["shippingWeight"])
	assert.Equal(t, map[string]map[string]any{"Furniture": {}}, item.Visible)
	assert.Equal(t, []string{"en", "fr"}, res.Envelope.Header.Locale)

	// No walmart_ca schema on disk: the default table is used.
	assert.Contains(t, codes(res.Diagnostics.Warnings), diagnostic.CodeDefaultTableFallback+":")
	assert.Equal(t, "Grey", res.Resolved.Values["color"])
}

func TestProcessErrors(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Process(context.Background(), rules.Key{Marketplace: "walmart", Country: "US", Category: "Garden"}, record.Record{}, heuristic.Context{})
	require.ErrorIs(t, err, ErrNoRuleSet)

	_, err = e.RegisterDocument([]byte("marketplace: amazon\ncountry: US\ncategory: Furniture\nrules:\n  - attributeId: sku\n    mappingType: auto_generate\n    value: sku_passthrough\n"))
	require.NoError(t, err)

	_, err = e.Process(context.Background(), rules.Key{Marketplace: "amazon", Country: "US", Category: "Furniture"}, record.Record{}, heuristic.Context{})
	require.ErrorIs(t, err, feed.ErrUnknownProfile)
}

func TestProcessWithPoolAllocator(t *testing.T) {
	alloc := resolve.PoolAllocatorFunc(func(_ context.Context, req resolve.PoolRequest) (string, error) {
		assert.Equal(t, "default", req.Pool)
		return "000000000017", nil
	})

	e := newTestEngine(t, WithPoolAllocator(alloc))

	res, err := e.Process(context.Background(), usFurniture, sofaRecord(), heuristic.Context{SKU: "SOFA-001"})
	require.NoError(t, err)

	assert.Empty(t, res.Resolved.Pending)
	assert.Equal(t, "000000000017", res.Envelope.Items[0].Visible["Furniture"]["productIdentifier"])
}

func TestSchemaReplaceAndInvalidate(t *testing.T) {
	e := newTestEngine(t)

	table, _, diags := e.Table(context.Background(), usFurniture)
	assert.Empty(t, diags.Warnings)
	assert.Equal(t, "measurementObject", table.FormatOr("weight").String())

	unknownCategory, _, _ := e.Table(context.Background(), rules.Key{Marketplace: "walmart", Country: "US", Category: "Garden"})
	assert.Equal(t, "measurementObject", unknownCategory.FormatOr("weight").String(), "flattened table")

	e.InvalidateSchema("walmart", "US")

	again, _, _ := e.Table(context.Background(), usFurniture)
	assert.Equal(t, table.Formats(), again.Formats(), "reloaded from disk")
}

func TestProcessBatch(t *testing.T) {
	e := newTestEngine(t)

	inputs := []resolve.Input{
		{Record: sofaRecord(), Context: heuristic.Context{SKU: "A"}},
		{Record: record.Record{}, Context: heuristic.Context{SKU: "B"}},
		{Record: sofaRecord(), Context: heuristic.Context{SKU: "C"}},
	}

	items, err := e.ProcessBatch(context.Background(), usFurniture, inputs)
	require.NoError(t, err)
	require.Len(t, items, 3)

	for _, it := range items {
		require.NoError(t, it.Err)
	}

	assert.True(t, items[0].Result.Success())
	assert.False(t, items[1].Result.Success())
	assert.True(t, items[2].Result.Success())
	assert.Equal(t, "C", items[2].Result.Envelope.Items[0].Orderable["sku"])
}

func TestCheck(t *testing.T) {
	e := newTestEngine(t)

	diags, err := e.Check(context.Background(), usFurniture)
	require.NoError(t, err)
	assert.Empty(t, diags.Errors, spew.Sdump(diags))
	assert.ElementsMatch(t, []string{
		diagnostic.CodeUnknownAttribute + ":brand",
		diagnostic.CodeUnknownAttribute + ":productIdentifier",
		diagnostic.CodeUnknownAttribute + ":warrantyText",
		diagnostic.CodeUnknownAttribute + ":warrantyURL",
	}, codes(diags.Warnings))

	_, err = e.Check(context.Background(), rules.Key{Marketplace: "walmart", Country: "US", Category: "Garden"})
	require.ErrorIs(t, err, ErrNoRuleSet)
}

func TestCheckSuggestsNames(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.RegisterDocument([]byte(`marketplace: walmart
country: US
category: Furniture
rules:
  - attributeId: sku
    mappingType: auto_generate
    value: sku_to_identifier
  - attributeId: colour
    mappingType: auto_generate
    value: colour_extract
`))
	require.NoError(t, err)

	diags, err := e.Check(context.Background(), usFurniture)
	require.NoError(t, err)

	require.Len(t, diags.Errors, 1, spew.Sdump(diags))
	assert.Equal(t, diagnostic.CodeUnknownHeuristic, diags.Errors[0].Code)
	assert.Contains(t, diags.Errors[0].Message, `did you mean "color_extract"?`)

	require.Len(t, diags.Warnings, 1, spew.Sdump(diags))
	assert.Equal(t, "colour", diags.Warnings[0].AttributeID)
	assert.Contains(t, diags.Warnings[0].Message, `did you mean "color"?`)
}

func TestCheckWithoutSchema(t *testing.T) {
	e := newTestEngine(t)

	diags, err := e.Check(context.Background(), caFurniture)
	require.NoError(t, err)
	assert.Equal(t, []string{diagnostic.CodeDefaultTableFallback + ":"}, codes(diags.Warnings))
}
