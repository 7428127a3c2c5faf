package heuristic

import (
	"regexp"
	"strconv"

	"listing-engine/internal/record"
)

// Pattern cascades, highest priority first. Each captures the count in group 1.
var (
	pieceCountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bset of (\d+)\b`),
		regexp.MustCompile(`(?i)\b(\d+)[- ]?pieces? set\b`),
		regexp.MustCompile(`(?i)\b(\d+)[- ]?pc set\b`),
	}
	seatingPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bseats? (\d+|one|two|three|four|five|six|seven|eight)\b`),
		regexp.MustCompile(`(?i)\b(\d+|one|two|three|four|five|six|seven|eight)[- ]?seat(?:er|s)?\b`),
		regexp.MustCompile(`(?i)\b(\d+)[- ]?person\b`),
	}
	drawerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d+|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|single|double)[- ]?drawers?\b`),
	}
	shelfPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d+|two|three|four|five|six|seven|eight)[- ]?(?:tier|shelf|shelves)\b`),
	}
	packPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bpack of (\d+)\b`),
		regexp.MustCompile(`(?i)\b(\d+)[- ]?pack\b`),
		regexp.MustCompile(`(?i)\bset of (\d+)\b`),
	}
	loadPattern = regexp.MustCompile(
		`(?i)\b(?:supports?|holds?|capacity(?: of)?|up to)\D{0,20}?(\d+(?:\.\d+)?)\s*(lbs?|pounds?|kgs?|kilograms?)\b`)
)

// countFromText returns a count from explicit fields, then the first matching
// pattern over title and description, then the rule default.
func countFromText(fields []string, patterns []*regexp.Regexp, fallback int) Func {
	paths := fieldPaths(fields...)

	return func(rec record.Record, _ Context, p Param) (any, bool) {
		if n, ok := rec.Number(paths...); ok && n > 0 {
			return int(n), true
		}

		if s, ok := firstCapture(title(rec), patterns); ok {
			if n, ok := parseCount(s); ok {
				return n, true
			}
		}

		if s, ok := firstCapture(description(rec), patterns); ok {
			if n, ok := parseCount(s); ok {
				return n, true
			}
		}

		if d, ok := p.Float("default"); ok {
			return int(d), true
		}

		if s, ok := p.Scalar(); ok {
			if n, err := strconv.Atoi(s); err == nil {
				return n, true
			}
		}

		if fallback > 0 {
			return fallback, true
		}

		return nil, false
	}
}

// extractMaxLoad reads a weight capacity from fields or phrases like
// "supports up to 300 lbs", converted to param unit (default lb).
func extractMaxLoad(rec record.Record, ctx Context, p Param) (any, bool) {
	unit := p.StringOr("unit", ctx.unit(ValueWeightUnit, "lb"))

	if n, ok := rec.Number(fieldPaths("maxLoadWeight", "weightCapacity")...); ok && n > 0 {
		from := rec.Text(fieldPaths("maxLoadWeightUnit", "weightCapacityUnit")...)
		if from == "" {
			from = unit
		}

		return ConvertWeight(n, from, unit)
	}

	m := loadPattern.FindStringSubmatch(searchText(rec))
	if len(m) < 3 {
		return nil, false
	}

	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil, false
	}

	return ConvertWeight(n, m[2], unit)
}
