package heuristic

import (
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-engine/internal/record"
)

type extractCase struct {
	name   string
	rec    record.Record
	ctx    Context
	param  any
	want   any
	absent bool
}

func runCases(t *testing.T, heuristic string, cases []extractCase) {
	t.Helper()

	lib := NewLibrary()

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, found, err := lib.Extract(heuristic, tt.rec, tt.ctx, NewParam(tt.param))
			require.NoError(t, err)

			if tt.absent {
				assert.False(t, found, "unexpected value: %s", spew.Sdump(got))
				assert.Nil(t, got)

				return
			}

			require.True(t, found, "no value for %s", spew.Sdump(tt.rec))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLibraryRegistry(t *testing.T) {
	lib := NewLibrary()

	names := lib.Names()
	assert.GreaterOrEqual(t, len(names), 35)
	assert.IsIncreasing(t, names)

	for _, name := range names {
		e, ok := lib.Entry(name)
		require.True(t, ok)
		assert.NotEmpty(t, e.Description, name)
		assert.NotEqual(t, "unknown", e.Strategy.String(), name)
	}

	assert.True(t, lib.Has("items_included"))
	assert.False(t, lib.Has("guess_everything"))
}

func TestLibraryUnknownHeuristic(t *testing.T) {
	_, found, err := NewLibrary().Extract("guess_everything", record.Record{}, Context{}, Param{})
	require.ErrorIs(t, err, ErrUnknownHeuristic)
	assert.False(t, found)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestLibrarySuggest(t *testing.T) {
	lib := NewLibrary()

	hint, ok := lib.Suggest("colour_extract")
	require.True(t, ok)
	assert.Equal(t, "color_extract", hint)

	_, found, err := lib.Extract("shippingWeightExtract", record.Record{}, Context{}, Param{})
	require.ErrorIs(t, err, ErrUnknownHeuristic)
	assert.False(t, found)
	assert.Contains(t, err.Error(), `did you mean "shipping_weight_extract"?`)

	_, ok = lib.Suggest("guess_everything")
	assert.False(t, ok)
}

func TestLibraryRecoversPanics(t *testing.T) {
	lib := &Library{entries: map[string]Entry{
		"boom": {Name: "boom", Heuristic: Func(func(record.Record, Context, Param) (any, bool) {
			panic("bad input")
		})},
	}}

	_, found, err := lib.Extract("boom", record.Record{}, Context{}, Param{})
	require.Error(t, err)
	assert.False(t, found)
}

// Every heuristic must be total on an empty record.
func TestHeuristicsTotalOnEmptyRecord(t *testing.T) {
	lib := NewLibrary()

	for _, name := range lib.Names() {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				_, _, err := lib.Extract(name, record.Record{}, Context{}, Param{})
				assert.NoError(t, err)
			})
		})
	}
}

func TestParam(t *testing.T) {
	p := NewParam(map[string]any{"unit": "kg", "multiplier": "1.5", "count": 3, "blank": " "})

	assert.Equal(t, "kg", p.StringOr("unit", "lb"))
	assert.Equal(t, "lb", p.StringOr("blank", "lb"))
	assert.Equal(t, 3, p.IntOr("count", 5))
	assert.Equal(t, 5, p.IntOr("missing", 5))

	m, ok := p.Float("multiplier")
	assert.True(t, ok)
	assert.InDelta(t, 1.5, m, 1e-9)

	_, ok = p.Scalar()
	assert.False(t, ok)

	bare := NewParam("Walnut")
	d, ok := bare.Default()
	assert.True(t, ok)
	assert.Equal(t, "Walnut", d)
	assert.Equal(t, "Walnut", bare.Raw())
}

func TestContextValues(t *testing.T) {
	ctx := Context{Values: map[string]any{ValuePriceMultiplier: "1.25", ValueCurrency: "USD"}}

	m, ok := ctx.Float(ValuePriceMultiplier)
	assert.True(t, ok)
	assert.InDelta(t, 1.25, m, 1e-9)

	c, ok := ctx.String(ValueCurrency)
	assert.True(t, ok)
	assert.Equal(t, "USD", c)

	_, ok = ctx.Float("missing")
	assert.False(t, ok)
}

func TestLibraryConcurrentExtract(t *testing.T) {
	lib := NewLibrary()

	cases := []struct {
		heuristic string
		rec       record.Record
		want      string
	}{
		{"condition", record.Record{"condition": "refurbished"}, "Refurbished"},
		{"condition", record.Record{"condition": "used like new"}, "Used Like New"},
		{"age_group", record.Record{"ageGroup": "kids"}, "Kids"},
		{"age_group", record.Record{"ageGroup": "young adult"}, "Young Adult"},
	}

	var wg sync.WaitGroup

	for w := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range 500 {
				tc := cases[(w+i)%len(cases)]

				got, found, err := lib.Extract(tc.heuristic, tc.rec, Context{}, Param{})
				if err != nil || !found || got != tc.want {
					t.Errorf("%s(%v) = %v, %v, %v; want %q", tc.heuristic, tc.rec, got, found, err, tc.want)
					return
				}
			}
		}()
	}

	wg.Wait()
}
