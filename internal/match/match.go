// Package match scores pairs of normalized names and selects the best
// candidate for a record out of a caller-restricted pool. The score is a
// token-sort similarity: word order never matters, only token content.
package match

import (
	"sort"
	"strings"
)

// Match is the outcome of a best-candidate search. Index refers to the
// position in the candidate slice handed to BestMatch.
type Match struct {
	Name  string
	Score int
	Index int
}

// Score returns the similarity of a and b in [0, 100]. Both strings are
// split into whitespace tokens, the tokens sorted and rejoined, and the
// result compared with an insert/delete edit distance normalized over the
// combined length. Symmetric; 100 for equal token multisets, 0 when the
// strings share no characters at all.
func Score(a, b string) int {
	sa := sortTokens(a)
	sb := sortTokens(b)

	if sa == sb {
		return 100
	}

	ra := []rune(sa)
	rb := []rune(sb)
	total := len(ra) + len(rb)
	if total == 0 {
		return 100
	}

	dist := total - 2*lcsLength(ra, rb)
	sim := 100 * float64(total-dist) / float64(total)
	return int(sim + 0.5)
}

// BestMatch returns the highest-scoring candidate for name, ties broken
// by earliest index. An empty candidate pool yields (Match{Index: -1},
// false): no match is possible, which is a normal outcome, not an error.
func BestMatch(name string, candidates []string) (Match, bool) {
	best := Match{Index: -1}
	if len(candidates) == 0 {
		return best, false
	}

	for i, cand := range candidates {
		s := Score(name, cand)
		if best.Index == -1 || s > best.Score {
			best = Match{Name: cand, Score: s, Index: i}
		}
	}
	return best, true
}

// Matcher applies an optional minimum confidence to BestMatch. The zero
// value accepts any score, preserving the historical behavior of the
// pipeline; set MinScore to reject low-confidence matches.
type Matcher struct {
	MinScore int
}

// Best runs BestMatch and discards the result when it scores below
// MinScore.
func (m Matcher) Best(name string, candidates []string) (Match, bool) {
	best, ok := BestMatch(name, candidates)
	if !ok {
		return best, false
	}
	if best.Score < m.MinScore {
		return Match{Index: -1}, false
	}
	return best, true
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// lcsLength computes the longest common subsequence length with a
// two-row dynamic program; the indel distance follows directly from it.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else if prev[j] >= curr[j-1] {
				curr[j] = prev[j]
			} else {
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
