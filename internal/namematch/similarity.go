package namematch

// Similarity computes a normalized edit-distance similarity in [0,1] between
// two names. Both inputs are normalized first; equal canonical forms score
// 1.0 and an empty canonical form on either side scores 0.0.
//
// The full O(n*m) Levenshtein table is computed deliberately: downstream
// thresholds are sensitive to small score deltas, so approximation shortcuts
// are not acceptable here.
func Similarity(a, b string) float64 {
	ca, cb := Normalize(a), Normalize(b)
	if ca == cb {
		if ca == "" {
			return 0
		}
		return 1
	}
	if ca == "" || cb == "" {
		return 0
	}

	ra, rb := []rune(ca), []rune(cb)
	dist := levenshtein(ra, rb)

	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	return 1 - float64(dist)/float64(longest)
}

// levenshtein computes the edit distance with unit insertion, deletion, and
// substitution costs, keeping two rows instead of the full matrix.
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
