package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank(t *testing.T) {
	ranked := Rank("colour", []string{"material", "color", "colors"})
	require.Len(t, ranked, 3)

	assert.Equal(t, "color", ranked[0].Name)
	assert.Equal(t, "colors", ranked[1].Name)
	assert.Equal(t, "material", ranked[2].Name)
	assert.Greater(t, ranked[0].Score, ranked[2].Score)
}

func TestRankTiesByName(t *testing.T) {
	ranked := Rank("ab", []string{"ac", "aa"})
	require.Len(t, ranked, 2)
	assert.Equal(t, "aa", ranked[0].Name)
	assert.Equal(t, "ac", ranked[1].Name)
}

func TestClosest(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		candidates []string
		want       string
		ok         bool
	}{
		{"misspelling", "colour", []string{"color", "material"}, "color", true},
		{"case and separators", "product_name", []string{"productName", "brand"}, "productName", true},
		{"nothing close", "warranty", []string{"color", "sku"}, "", false},
		{"exact match is skipped", "color", []string{"color"}, "", false},
		{"no candidates", "color", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Closest(tt.input, tt.candidates, DefaultThreshold)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
