package match

// Levenshtein returns the minimum number of single-byte insertions,
// deletions or substitutions turning a into b. It keeps two rows of the
// matrix, sized by the shorter input.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	if len(a) == 0 {
		return len(b)
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}

// Similarity scores two strings between 0 (nothing shared) and 1 (equal) as
// 1 - distance / longest length.
func Similarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}

	return 1 - float64(Levenshtein(a, b))/float64(max(len(a), len(b)))
}

// NameSimilarity scores two names after normalization, taking the better of
// the plain and suffix-stripped forms.
func NameSimilarity(a, b string) float64 {
	score := Similarity(NormalizeName(a), NormalizeName(b))

	if stripped := Similarity(NormalizeNameWithSuffixStrip(a), NormalizeNameWithSuffixStrip(b)); stripped > score {
		return stripped
	}

	return score
}
