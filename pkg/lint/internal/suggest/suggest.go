// Package suggest finds "did you mean" candidates by edit distance.
package suggest

import "sort"

// MaxDistance is the largest edit distance still considered similar.
const MaxDistance = 3

// MaxResults caps how many candidates are suggested.
const MaxResults = 3

// Similar returns up to MaxResults candidates within MaxDistance of input,
// closest first. Ties keep the candidates' original order.
func Similar(input string, candidates []string) []string {
	type scored struct {
		name string
		dist int
		pos  int
	}

	var matches []scored
	for i, candidate := range candidates {
		dist := levenshtein(input, candidate)
		if dist > 0 && dist <= MaxDistance {
			matches = append(matches, scored{name: candidate, dist: dist, pos: i})
		}
	}

	if len(matches) == 0 {
		return nil
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].pos < matches[j].pos
	})

	n := len(matches)
	if n > MaxResults {
		n = MaxResults
	}
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = matches[i].name
	}
	return out
}

// levenshtein calculates the Levenshtein distance between two strings.
func levenshtein(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}
