package feed

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrUnknownProfile is returned for a (marketplace, country) without a profile.
var ErrUnknownProfile = errors.New("unknown marketplace profile")

// Profile describes the wire conventions of one marketplace locale.
type Profile struct {
	Marketplace  string
	Country      string
	Version      string
	BusinessUnit string
	// Languages lists the locale codes; the first is the default used when
	// wrapping monolingual values.
	Languages  []string
	WeightUnit string
	LengthUnit string
	// LocaleSpecific marketplaces ship an empty category bucket; its content
	// is supplied by a later editorial step.
	LocaleSpecific bool
	// AlwaysVisible lists the attributes of the Orderable bucket.
	AlwaysVisible []string
	// Units overrides the measurement unit of individual attributes.
	Units map[string]string
}

// DefaultLanguage returns the first language code.
func (p Profile) DefaultLanguage() string {
	if len(p.Languages) == 0 {
		return "en"
	}

	return p.Languages[0]
}

// IsAlwaysVisible reports whether attributeID belongs to the Orderable bucket.
// Nested ids are placed by their top-level segment.
func (p Profile) IsAlwaysVisible(attributeID string) bool {
	top, _, _ := strings.Cut(attributeID, ".")
	return slices.Contains(p.AlwaysVisible, top)
}

var lengthHints = []string{"length", "width", "height", "depth", "diameter"}

// UnitFor returns the measurement unit for attributeID: an explicit
// override, else the length unit for dimension-like names, else the weight
// unit.
func (p Profile) UnitFor(attributeID string) string {
	if u, ok := p.Units[attributeID]; ok {
		return u
	}

	lower := strings.ToLower(attributeID)
	for _, h := range lengthHints {
		if strings.Contains(lower, h) {
			return p.LengthUnit
		}
	}

	return p.WeightUnit
}

func (p Profile) key() string {
	return profileKey(p.Marketplace, p.Country)
}

func profileKey(marketplace, country string) string {
	return strings.ToLower(marketplace) + "/" + strings.ToUpper(country)
}

// orderable is the Orderable bucket shared by the Walmart item feed versions.
var orderable = []string{
	"sku", "productIdentifiers", "productName", "brand", "price", "shippingWeight",
	"fulfillmentLagTime", "electronicsIndicator", "batteryTechnologyType",
	"chemicalAerosolPesticide", "shipsInOriginalPackaging", "mustShipAlone",
	"startDate", "endDate", "stateRestrictions", "productIdUpdate", "skuUpdate",
	"multipackQuantity",
}

// builtinProfiles are the supported marketplace locales.
var builtinProfiles = []Profile{
	{
		Marketplace:   "walmart",
		Country:       "US",
		Version:       "5.0.20240517-04_26_18-api",
		BusinessUnit:  "WALMART_US",
		Languages:     []string{"en"},
		WeightUnit:    "lb",
		LengthUnit:    "in",
		AlwaysVisible: orderable,
	},
	{
		Marketplace:    "walmart",
		Country:        "CA",
		Version:        "3.16",
		BusinessUnit:   "WALMART_CA",
		Languages:      []string{"en", "fr"},
		WeightUnit:     "kg",
		LengthUnit:     "cm",
		LocaleSpecific: true,
		AlwaysVisible:  orderable,
	},
	{
		Marketplace:    "walmart",
		Country:        "MX",
		Version:        "3.1",
		BusinessUnit:   "WALMART_MX",
		Languages:      []string{"es"},
		WeightUnit:     "kg",
		LengthUnit:     "cm",
		LocaleSpecific: true,
		AlwaysVisible:  orderable,
	},
}

// Profiles is a read-only set of profiles.
type Profiles struct {
	byKey map[string]Profile
}

// NewProfiles indexes profiles; later entries replace earlier ones with the
// same (marketplace, country).
func NewProfiles(profiles ...Profile) *Profiles {
	ps := &Profiles{byKey: make(map[string]Profile, len(profiles))}

	for _, p := range profiles {
		p.Languages = slices.Clone(p.Languages)
		p.AlwaysVisible = slices.Clone(p.AlwaysVisible)
		p.Units = maps.Clone(p.Units)
		ps.byKey[p.key()] = p
	}

	return ps
}

// DefaultProfiles returns the built-in Walmart US, CA and MX profiles.
func DefaultProfiles() *Profiles {
	return NewProfiles(builtinProfiles...)
}

// Lookup returns the profile for (marketplace, country).
func (ps *Profiles) Lookup(marketplace, country string) (Profile, error) {
	p, ok := ps.byKey[profileKey(marketplace, country)]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrUnknownProfile, profileKey(marketplace, country))
	}

	return p, nil
}

// Keys returns the "marketplace/COUNTRY" keys, sorted.
func (ps *Profiles) Keys() []string {
	return slices.Sorted(maps.Keys(ps.byKey))
}
