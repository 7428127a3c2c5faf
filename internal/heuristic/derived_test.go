package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"listing-engine/internal/record"
)

func TestCalculatePrice(t *testing.T) {
	runCases(t, "calculate_price", []extractCase{
		{name: "base only", ctx: Context{BasePrice: 100}, want: 100.0},
		{
			name:  "param multiplier and addition",
			ctx:   Context{BasePrice: 99.99},
			param: map[string]any{"multiplier": 1.15, "addition": 4.99},
			want:  119.98,
		},
		{
			name: "context values",
			ctx:  Context{BasePrice: 10, Values: map[string]any{ValuePriceMultiplier: 2, ValuePriceAddition: "0.5"}},
			want: 20.5,
		},
		{
			name:  "param wins over context",
			ctx:   Context{BasePrice: 10, Values: map[string]any{ValuePriceMultiplier: 2}},
			param: map[string]any{"multiplier": 3},
			want:  30.0,
		},
		{name: "record price fallback", rec: record.Record{"variants": []any{map[string]any{"price": "49.50"}}}, want: 49.5},
		{name: "no base", rec: record.Record{}, absent: true},
	})
}

func TestSKUHeuristics(t *testing.T) {
	runCases(t, "sku_to_identifier", []extractCase{
		{name: "ascii passthrough", ctx: Context{SKU: "SOFA-001"}, want: "SOFA-001"},
		{name: "transliterated", ctx: Context{SKU: "Canapé Größe 2"}, want: "Canape-Grosse-2"},
		{name: "unsafe runs collapsed", rec: record.Record{"sku": "  a//b  c "}, want: "a-b-c"},
		{name: "non latin dropped", ctx: Context{SKU: "沙发-42"}, want: "42"},
		{name: "capped", ctx: Context{SKU: "ABCDEFGHIJ"}, param: map[string]any{"max_length": 4}, want: "ABCD"},
		{name: "nothing usable", ctx: Context{SKU: "沙发"}, absent: true},
		{name: "missing", absent: true},
	})

	runCases(t, "sku_passthrough", []extractCase{
		{name: "context first", ctx: Context{SKU: "CTX"}, rec: record.Record{"sku": "REC"}, want: "CTX"},
		{name: "record", rec: record.Record{"sku": "REC"}, want: "REC"},
	})

	runCases(t, "shop_identifier", []extractCase{
		{name: "context", ctx: Context{ShopID: "shop-1"}, want: "shop-1"},
		{name: "missing", absent: true},
	})
}

func TestTransliterate(t *testing.T) {
	assert.Equal(t, "Creme brulee", Transliterate("Crème brûlée"))
	assert.Equal(t, "AEsir Lodz", Transliterate("Æsir Łódź"))
	assert.Equal(t, "plain", Transliterate("plain"))
}

func TestFulfillmentAndKeywords(t *testing.T) {
	runCases(t, "fulfillment_lag_time", []extractCase{
		{name: "default", want: 1},
		{name: "param", param: map[string]any{"days": 3}, want: 3},
		{name: "record", rec: record.Record{"handlingTime": "2"}, want: 2},
	})

	runCases(t, "keywords", []extractCase{
		{
			name: "title words",
			rec:  record.Record{"title": "Modern Velvet Sofa and Ottoman Set of 2"},
			want: "modern, velvet, sofa, ottoman",
		},
		{
			name:  "tags first and capped",
			rec:   record.Record{"title": "Velvet Sofa", "tags": "living room, Velvet"},
			param: map[string]any{"max_terms": 2},
			want:  "living room, velvet",
		},
		{name: "empty", rec: record.Record{"title": "A 2"}, absent: true},
	})
}

func TestAssemblyAndUpholstery(t *testing.T) {
	runCases(t, "assembly_required", []extractCase{
		{name: "flag bool", rec: record.Record{"assemblyRequired": true}, want: "Yes"},
		{name: "flag string", rec: record.Record{"attributes": map[string]any{"assemblyRequired": "no"}}, want: "No"},
		{name: "negative phrase wins", rec: record.Record{"description": "No assembly required."}, want: "No"},
		{name: "positive phrase", rec: record.Record{"description": "Easy assembly in minutes"}, want: "Yes"},
		{name: "unknown", rec: record.Record{"title": "Sofa"}, absent: true},
		{name: "default", rec: record.Record{"title": "Sofa"}, param: "Yes", want: "Yes"},
	})

	runCases(t, "upholstered", []extractCase{
		{name: "term", rec: record.Record{"title": "Velvet Accent Chair"}, want: "Yes"},
		{name: "flag", rec: record.Record{"isUpholstered": false}, want: "No"},
		{name: "no evidence", rec: record.Record{"title": "Oak Side Table"}, absent: true},
	})
}
