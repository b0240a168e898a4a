package search

import (
	"regexp"
	"sort"
	"strings"
)

// Rank orders items by relevance of name(item) to query and returns at most k
// of them (k <= 0 keeps all).
//
// Scoring:
//  1. Jaccard similarity between the folded query tokens and name tokens,
//     where a name token counts as matched when it starts with a query token
//     ("gar" matches "garcia").
//  2. A prefix bonus when the folded name starts with the folded query.
//
// Ties break by folded name, then by original position, so the order is
// deterministic for a given input slice.
func Rank[T any](query string, items []T, name func(T) string, k int) []T {
	q := Fold(query)
	qTokens := tokenize(q)

	type scored struct {
		item  T
		key   string
		score float64
		pos   int
	}
	buf := make([]scored, 0, len(items))
	for i, it := range items {
		n := Fold(name(it))
		s := similarity(qTokens, tokenize(n))
		if q != "" && strings.HasPrefix(n, q) {
			s += 0.5
		}
		buf = append(buf, scored{item: it, key: n, score: s, pos: i})
	}

	sort.SliceStable(buf, func(a, b int) bool {
		if buf[a].score != buf[b].score {
			return buf[a].score > buf[b].score
		}
		if buf[a].key != buf[b].key {
			return buf[a].key < buf[b].key
		}
		return buf[a].pos < buf[b].pos
	})

	if k <= 0 || k > len(buf) {
		k = len(buf)
	}
	out := make([]T, k)
	for i := 0; i < k; i++ {
		out[i] = buf[i].item
	}
	return out
}

var wordRE = regexp.MustCompile(`\p{L}+\p{N}*|\p{N}+`)

func tokenize(s string) []string {
	return wordRE.FindAllString(strings.ToLower(s), -1)
}

// similarity is |Q ∩ N| / |Q ∪ N| with prefix-aware matching of query tokens.
func similarity(q, n []string) float64 {
	if len(q) == 0 || len(n) == 0 {
		return 0
	}
	matched := 0
	for _, qt := range q {
		for _, nt := range n {
			if strings.HasPrefix(nt, qt) {
				matched++
				break
			}
		}
	}
	union := len(q) + len(n) - matched
	if union <= 0 {
		return 0
	}
	return float64(matched) / float64(union)
}
