package heuristic

import (
	"strings"

	"listing-engine/internal/record"
)

// Param wraps the free-form parameter of an auto_generate rule. It is either
// an object of named options or a single bare scalar.
type Param struct {
	raw any
}

// NewParam wraps a decoded rule parameter.
func NewParam(raw any) Param {
	return Param{raw: raw}
}

// Raw returns the parameter as decoded.
func (p Param) Raw() any {
	return p.raw
}

func (p Param) lookup(key string) (any, bool) {
	m, ok := p.raw.(map[string]any)
	if !ok {
		return nil, false
	}

	v, ok := m[key]

	return v, ok && v != nil
}

// String returns a named string option.
func (p Param) String(key string) (string, bool) {
	v, ok := p.lookup(key)
	if !ok {
		return "", false
	}

	s, ok := record.Scalar(v)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}

	return strings.TrimSpace(s), true
}

// StringOr returns a named string option or def.
func (p Param) StringOr(key, def string) string {
	if s, ok := p.String(key); ok {
		return s
	}

	return def
}

// Float returns a named numeric option.
func (p Param) Float(key string) (float64, bool) {
	v, ok := p.lookup(key)
	if !ok {
		return 0, false
	}

	return record.ToFloat(v)
}

// IntOr returns a named integer option or def.
func (p Param) IntOr(key string, def int) int {
	if f, ok := p.Float(key); ok {
		return int(f)
	}

	return def
}

// Scalar returns the parameter itself when it is a bare scalar.
func (p Param) Scalar() (string, bool) {
	s, ok := record.Scalar(p.raw)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}

	return strings.TrimSpace(s), true
}

// Default returns the "default" option, or the bare scalar parameter.
func (p Param) Default() (any, bool) {
	if v, ok := p.lookup("default"); ok {
		return v, true
	}

	if s, ok := p.Scalar(); ok {
		return s, true
	}

	return nil, false
}
