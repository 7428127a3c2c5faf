package heuristic

import "strings"

// Weight units in grams.
var gramsPer = map[string]float64{
	"g":  1,
	"kg": 1000,
	"oz": 28.349523125,
	"lb": 453.59237,
}

// Length units in millimetres.
var millimetresPer = map[string]float64{
	"mm": 1,
	"cm": 10,
	"m":  1000,
	"in": 25.4,
	"ft": 304.8,
}

var unitAliases = map[string]string{
	"g": "g", "gr": "g", "gram": "g", "grams": "g",
	"kg": "kg", "kgs": "kg", "kilo": "kg", "kilos": "kg", "kilogram": "kg", "kilograms": "kg",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb", "#": "lb",
	"mm": "mm", "millimeter": "mm", "millimeters": "mm", "millimetre": "mm", "millimetres": "mm",
	"cm": "cm", "centimeter": "cm", "centimeters": "cm", "centimetre": "cm", "centimetres": "cm",
	"m": "m", "meter": "m", "meters": "m", "metre": "m", "metres": "m",
	"in": "in", "inch": "in", "inches": "in", `"`: "in", "''": "in",
	"ft": "ft", "foot": "ft", "feet": "ft", "'": "ft",
}

// NormalizeUnit maps a unit spelling onto its canonical symbol.
func NormalizeUnit(u string) (string, bool) {
	c, ok := unitAliases[strings.ToLower(strings.TrimSpace(strings.TrimSuffix(u, ".")))]
	return c, ok
}

// ConvertWeight converts v between weight units.
func ConvertWeight(v float64, from, to string) (float64, bool) {
	return convert(v, from, to, gramsPer)
}

// ConvertLength converts v between length units.
func ConvertLength(v float64, from, to string) (float64, bool) {
	return convert(v, from, to, millimetresPer)
}

func convert(v float64, from, to string, table map[string]float64) (float64, bool) {
	f, ok := NormalizeUnit(from)
	if !ok {
		return 0, false
	}

	t, ok := NormalizeUnit(to)
	if !ok {
		return 0, false
	}

	fromFactor, ok := table[f]
	if !ok {
		return 0, false
	}

	toFactor, ok := table[t]
	if !ok {
		return 0, false
	}

	return round2(v * fromFactor / toFactor), true
}
