package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfiles(t *testing.T) {
	ps := DefaultProfiles()

	assert.Equal(t, []string{"walmart/CA", "walmart/MX", "walmart/US"}, ps.Keys())

	tests := []struct {
		country        string
		lang           string
		weight, length string
		localeSpecific bool
	}{
		{country: "US", lang: "en", weight: "lb", length: "in"},
		{country: "CA", lang: "en", weight: "kg", length: "cm", localeSpecific: true},
		{country: "MX", lang: "es", weight: "kg", length: "cm", localeSpecific: true},
	}

	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			p, err := ps.Lookup("walmart", tt.country)
			require.NoError(t, err)

			assert.Equal(t, tt.lang, p.DefaultLanguage())
			assert.Equal(t, tt.weight, p.UnitFor("shippingWeight"))
			assert.Equal(t, tt.length, p.UnitFor("assembledProductHeight"))
			assert.Equal(t, tt.localeSpecific, p.LocaleSpecific)
			assert.True(t, p.IsAlwaysVisible("sku"))
			assert.True(t, p.IsAlwaysVisible("price.amount"))
			assert.False(t, p.IsAlwaysVisible("color"))
		})
	}

	_, err := ps.Lookup("walmart", "BR")
	require.ErrorIs(t, err, ErrUnknownProfile)
}

func TestCustomProfile(t *testing.T) {
	ps := NewProfiles(Profile{
		Marketplace: "Walmart",
		Country:     "us",
		WeightUnit:  "lb",
		LengthUnit:  "in",
		Units:       map[string]string{"maximumLoadWeight": "kg"},
	})

	p, err := ps.Lookup("walmart", "US")
	require.NoError(t, err)

	assert.Equal(t, "en", p.DefaultLanguage())
	assert.Equal(t, "kg", p.UnitFor("maximumLoadWeight"))
	assert.Equal(t, "in", p.UnitFor("seatDepth"))
}
