package common

import "strings"

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// FirstNonEmpty returns the first value that is not blank after trimming.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}

// IsBlank reports whether a resolved value carries no content:
// nil, a blank string, or an empty slice or map.
func IsBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}
