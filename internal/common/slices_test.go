package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Dedupe([]string{"a", "b", "a", "c", "b"}))
	assert.Equal(t, []int{1}, Dedupe([]int{1}))
	assert.Empty(t, Dedupe([]string{}))
}

func TestIsBlank(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, true},
		{"blank string", "   ", true},
		{"string", "Acme", false},
		{"empty slice", []any{}, true},
		{"slice", []string{"a"}, false},
		{"empty map", map[string]any{}, true},
		{"zero number", 0, false},
		{"false", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBlank(tt.value))
		})
	}
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", "  ", "b", "c"))
	assert.Empty(t, FirstNonEmpty())
}

func TestSet(t *testing.T) {
	set := Set("a", "b", "a")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "b")
}
