package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is a channel product record.
type Record map[string]any

// Decode parses a JSON object into a Record.
func Decode(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}

	if rec == nil {
		rec = Record{}
	}

	return rec, nil
}

// Lookup resolves a textual path. A malformed path is reported as not found.
func (r Record) Lookup(path string) (any, bool) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, false
	}

	return r.Get(p)
}

// Get resolves a parsed path against the record.
func (r Record) Get(p Path) (any, bool) {
	var current any = map[string]any(r)

	for _, seg := range p.Segments {
		next, ok := child(current, seg.Key)
		if !ok {
			return nil, false
		}

		for _, idx := range seg.Indexes {
			next, ok = element(next, idx)
			if !ok {
				return nil, false
			}
		}

		current = next
	}

	if current == nil {
		return nil, false
	}

	return current, true
}

// Text returns the first path whose value renders to a non-blank string.
// Numbers and booleans are formatted; containers are skipped.
func (r Record) Text(paths ...string) string {
	for _, path := range paths {
		v, ok := r.Lookup(path)
		if !ok {
			continue
		}

		if s, ok := Scalar(v); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}

	return ""
}

// Number returns the first path whose value is numeric or a numeric string.
func (r Record) Number(paths ...string) (float64, bool) {
	for _, path := range paths {
		v, ok := r.Lookup(path)
		if !ok {
			continue
		}

		if n, ok := ToFloat(v); ok {
			return n, true
		}
	}

	return 0, false
}

// Strings returns the value at path as a string slice. A scalar becomes a
// single-element slice; non-scalar elements are dropped.
func (r Record) Strings(path string) []string {
	v, ok := r.Lookup(path)
	if !ok {
		return nil
	}

	var out []string

	switch t := v.(type) {
	case []string:
		for _, s := range t {
			if strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case []any:
		for _, e := range t {
			if s, ok := Scalar(e); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	default:
		if s, ok := Scalar(v); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}

	return out
}

// Scalar renders a scalar value as a string.
func Scalar(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return "", false
	}
}

// ToFloat converts numbers and numeric strings to float64.
func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func child(container any, key string) (any, bool) {
	switch m := container.(type) {
	case map[string]any:
		v, ok := m[key]
		return v, ok
	case Record:
		v, ok := m[key]
		return v, ok
	case map[string]string:
		v, ok := m[key]
		return v, ok
	default:
		return nil, false
	}
}

func element(seq any, idx int) (any, bool) {
	switch s := seq.(type) {
	case []any:
		if idx < len(s) {
			return s[idx], true
		}
	case []string:
		if idx < len(s) {
			return s[idx], true
		}
	case []map[string]any:
		if idx < len(s) {
			return s[idx], true
		}
	case []float64:
		if idx < len(s) {
			return s[idx], true
		}
	}

	return nil, false
}
