package textutil

// SimilarityPercent computes the percentage of characters shared between two
// strings using the recursive longest-common-substring decomposition: the
// longest common substring is found, then the regions to its left and right
// are compared the same way. Returns 0-100.
func SimilarityPercent(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	common := similarChars(a, b)
	return float64(common*2) * 100 / float64(len(a)+len(b))
}

func similarChars(a, b string) int {
	posA, posB, length := longestCommonRun(a, b)
	if length == 0 {
		return 0
	}
	sum := length
	if posA > 0 && posB > 0 {
		sum += similarChars(a[:posA], b[:posB])
	}
	if posA+length < len(a) && posB+length < len(b) {
		sum += similarChars(a[posA+length:], b[posB+length:])
	}
	return sum
}

func longestCommonRun(a, b string) (posA, posB, length int) {
	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			k := 0
			for i+k < len(a) && j+k < len(b) && a[i+k] == b[j+k] {
				k++
			}
			if k > length {
				posA, posB, length = i, j, k
			}
		}
	}
	return posA, posB, length
}

// Levenshtein computes the edit distance between two strings with unit costs.
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
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
