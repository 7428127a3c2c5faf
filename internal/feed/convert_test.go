package feed

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-engine/internal/schema"
)

var enTarget = Target{Language: "en", Languages: []string{"en", "fr"}, Unit: "lb"}

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		format   schema.FieldFormat
		in       any
		want     any
		mismatch bool
	}{
		{name: "scalar passthrough", format: schema.FormatScalar, in: "Acme", want: "Acme"},
		{name: "enum passthrough", format: schema.FormatEnum, in: "New", want: "New"},
		{name: "multilang wraps", format: schema.FormatMultiLangObject, in: "Sofa", want: map[string]any{"en": "Sofa"}},
		{
			name:   "multilang keeps other locale",
			format: schema.FormatMultiLangObject,
			in:     map[string]any{"en": "Sofa", "fr": "Canapé"},
			want:   map[string]any{"en": "Sofa", "fr": "Canapé"},
		},
		{
			name:     "multilang rejects plain object",
			format:   schema.FormatMultiLangObject,
			in:       map[string]any{"name": "Sofa"},
			want:     map[string]any{"name": "Sofa"},
			mismatch: true,
		},
		{
			name:   "scenario D",
			format: schema.FormatMultiLangArray,
			in:     []string{"Feature 1", "Feature 2"},
			want:   []any{map[string]any{"en": "Feature 1"}, map[string]any{"en": "Feature 2"}},
		},
		{
			name:   "multilang array from scalar",
			format: schema.FormatMultiLangArray,
			in:     "Only one",
			want:   []any{map[string]any{"en": "Only one"}},
		},
		{
			name:     "multilang array with nested list",
			format:   schema.FormatMultiLangArray,
			in:       []any{"ok", []any{"nested"}},
			want:     []any{"ok", []any{"nested"}},
			mismatch: true,
		},
		{name: "measurement from number", format: schema.FormatMeasurementObject, in: 5.0, want: map[string]any{"unit": "lb", "magnitude": 5.0}},
		{name: "measurement from int", format: schema.FormatMeasurementObject, in: 12, want: map[string]any{"unit": "lb", "magnitude": 12}},
		{name: "measurement from numeric string", format: schema.FormatMeasurementObject, in: "2.5", want: map[string]any{"unit": "lb", "magnitude": 2.5}},
		{
			name:   "measurement keeps its unit",
			format: schema.FormatMeasurementObject,
			in:     map[string]any{"unit": "kg", "magnitude": 3},
			want:   map[string]any{"unit": "kg", "magnitude": 3},
		},
		{name: "measurement rejects text", format: schema.FormatMeasurementObject, in: "heavy", want: "heavy", mismatch: true},
		{name: "plain array wraps", format: schema.FormatPlainArray, in: "Living Room", want: []any{"Living Room"}},
		{name: "plain array keeps list", format: schema.FormatPlainArray, in: []string{"a", "b"}, want: []string{"a", "b"}},
		{
			name:     "plain array rejects object",
			format:   schema.FormatPlainArray,
			in:       map[string]any{"a": 1},
			want:     map[string]any{"a": 1},
			mismatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.in, tt.format, enTarget)
			if tt.mismatch {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, got, spew.Sdump(got))

			again, _ := Convert(got, tt.format, enTarget)
			assert.Equal(t, got, again, "conversion must be idempotent")
		})
	}
}

func TestMeasurementRoundTrip(t *testing.T) {
	for _, unit := range []string{"lb", "kg", "in", "cm"} {
		for _, n := range []float64{0, 1, 5, 12.75} {
			got, err := Convert(n, schema.FormatMeasurementObject, Target{Unit: unit})
			require.NoError(t, err)
			assert.Equal(t, map[string]any{"unit": unit, "magnitude": n}, got)

			again, err := Convert(got, schema.FormatMeasurementObject, Target{Unit: "other"})
			require.NoError(t, err)
			assert.Equal(t, got, again)
		}
	}
}
