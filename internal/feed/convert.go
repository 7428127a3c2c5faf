package feed

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"listing-engine/internal/schema"
)

// Target is what a conversion wraps values with.
type Target struct {
	Language  string
	Languages []string
	Unit      string
}

// Convert reshapes v into format f. A value already in the target shape is
// returned unchanged, so Convert is idempotent. When v cannot take the
// shape, it is returned as is with a non-nil error describing the mismatch.
func Convert(v any, f schema.FieldFormat, t Target) (any, error) {
	switch f {
	case schema.FormatMultiLangObject:
		return toMultiLang(v, t)
	case schema.FormatMultiLangArray:
		return toMultiLangArray(v, t)
	case schema.FormatMeasurementObject:
		return toMeasurement(v, t)
	case schema.FormatPlainArray:
		return toPlainArray(v)
	default:
		return v, nil
	}
}

func isScalar(v any) bool {
	switch v.(type) {
	case string, bool, float64, float32, int, int64, int32, json.Number:
		return true
	default:
		return false
	}
}

// isLanguageObject reports whether m is keyed by language codes only.
func isLanguageObject(m map[string]any, t Target) bool {
	if len(m) == 0 {
		return false
	}

	for k := range m {
		if k != t.Language && !containsFold(t.Languages, k) {
			return false
		}
	}

	return true
}

func containsFold(list []string, s string) bool {
	for _, e := range list {
		if strings.EqualFold(e, s) {
			return true
		}
	}

	return false
}

func toMultiLang(v any, t Target) (any, error) {
	switch x := v.(type) {
	case map[string]any:
		if isLanguageObject(x, t) {
			return x, nil
		}

		return v, errors.New("object is not keyed by language codes")
	default:
		if isScalar(v) {
			return map[string]any{t.Language: v}, nil
		}

		return v, fmt.Errorf("%T cannot be a language object", v)
	}
}

func toMultiLangArray(v any, t Target) (any, error) {
	elems, ok := asSlice(v)
	if !ok {
		// A single value becomes a one-element list.
		elems = []any{v}
	}

	out := make([]any, len(elems))

	for i, e := range elems {
		w, err := toMultiLang(e, t)
		if err != nil {
			return v, fmt.Errorf("element %d: %w", i, err)
		}

		out[i] = w
	}

	return out, nil
}

func toMeasurement(v any, t Target) (any, error) {
	if m, ok := v.(map[string]any); ok {
		_, unit := m["unit"]
		_, magnitude := m["magnitude"]

		if unit && magnitude && len(m) == 2 {
			return m, nil
		}

		return v, errors.New("object is not a unit/magnitude pair")
	}

	switch x := v.(type) {
	case float64, float32, int, int64, int32:
		return map[string]any{"unit": t.Unit, "magnitude": x}, nil
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return map[string]any{"unit": t.Unit, "magnitude": f}, nil
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			return map[string]any{"unit": t.Unit, "magnitude": f}, nil
		}
	}

	return v, fmt.Errorf("%v is not a number", v)
}

func toPlainArray(v any) (any, error) {
	if _, ok := asSlice(v); ok {
		return v, nil
	}

	if isScalar(v) {
		return []any{v}, nil
	}

	return v, fmt.Errorf("%T cannot be a plain array", v)
}

// asSlice views the common slice types as []any.
func asSlice(v any) ([]any, bool) {
	switch x := v.(type) {
	case []any:
		return x, true
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}

		return out, true
	case []float64:
		out := make([]any, len(x))
		for i, f := range x {
			out[i] = f
		}

		return out, true
	default:
		return nil, false
	}
}
