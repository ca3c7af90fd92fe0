package ai

import (
	"math"
	"sort"
)

const cosineEpsilon = 1e-8

// DefaultTopK bounds ranked results when the caller does not ask for more.
const DefaultTopK = 5

// Ranked pairs an item with its cosine similarity to the query.
type Ranked[T any] struct {
	Item  T
	Score float64
}

// Cosine returns the cosine similarity of two vectors in [-1, 1].
// Vectors of different lengths are incomparable (different embedding model
// versions) and score 0 rather than being truncated to a common prefix.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	return dot / (math.Sqrt(normA)*math.Sqrt(normB) + cosineEpsilon)
}

// RankBySimilarity scores every item against the query and returns the top
// k by descending similarity. Items whose vector is missing or whose
// dimension differs from the query are skipped, never errored. Ties keep
// input order. k <= 0 falls back to DefaultTopK.
func RankBySimilarity[T any](query []float32, items []T, vector func(T) []float32, k int) []Ranked[T] {
	if k <= 0 {
		k = DefaultTopK
	}
	ranked := make([]Ranked[T], 0, len(items))
	for _, item := range items {
		vec := vector(item)
		if len(vec) == 0 || len(vec) != len(query) {
			continue
		}
		ranked = append(ranked, Ranked[T]{Item: item, Score: Cosine(query, vec)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}
