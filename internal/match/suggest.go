package match

import (
	"cmp"
	"slices"
)

// DefaultThreshold is the lowest score Closest accepts when callers have no
// better value.
const DefaultThreshold = 0.7

// Candidate is one scored name.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name, best first. Ties are broken by
// candidate name so the order is stable.
func Rank(name string, candidates []string) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Candidate{Name: c, Score: NameSimilarity(name, c)})
	}

	slices.SortFunc(out, func(a, b Candidate) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	return out
}

// Closest returns the best candidate scoring at least threshold. An exact
// match of name itself is not a suggestion.
func Closest(name string, candidates []string, threshold float64) (string, bool) {
	for _, c := range Rank(name, candidates) {
		if c.Score < threshold {
			break
		}

		if c.Name != name {
			return c.Name, true
		}
	}

	return "", false
}
