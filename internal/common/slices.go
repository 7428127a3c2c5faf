package common

// Set builds a lookup set from the given values.
func Set[E comparable](values ...E) map[E]struct{} {
	set := make(map[E]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}

	return set
}

// Dedupe returns s without repeated elements, keeping first occurrences in order.
func Dedupe[S ~[]E, E comparable](s S) S {
	if len(s) < 2 {
		return s
	}

	seen := make(map[E]struct{}, len(s))
	out := make(S, 0, len(s))

	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		out = append(out, v)
	}

	return out
}
