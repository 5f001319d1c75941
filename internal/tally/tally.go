// Package tally folds a dataset.Collection into label frequency tables and
// flat sequences.
//
// Every function walks the collection in index order and returns the first
// error raised by the collection unchanged, so errors.Is and errors.As match
// the dataset sentinels.
package tally

import (
	"cmp"
	"context"
	"maps"
	"slices"

	"pairset/internal/dataset"
)

// Counts maps a label to its number of occurrences. Labels are keyed by
// exact equality, so NaN float labels never aggregate.
type Counts[L comparable] map[L]int

// Get returns the count for label, zero when unseen.
func (c Counts[L]) Get(label L) int {
	return c[label]
}

// Total sums all counts.
func (c Counts[L]) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// SortedLabels returns the labels of c in ascending order.
func SortedLabels[L cmp.Ordered](c Counts[L]) []L {
	return slices.Sorted(maps.Keys(c))
}

// Merge sums a and b into a new table. Neither input is modified.
func Merge[L comparable](a, b Counts[L]) Counts[L] {
	sum := make(Counts[L], max(len(a), len(b)))
	for label, n := range a {
		sum[label] = n
	}
	for label, n := range b {
		sum[label] += n
	}
	return sum
}

// CountByLabel returns the frequency of every label in c.
func CountByLabel[F any, L comparable](c dataset.Collection[F, L]) (Counts[L], error) {
	return countRange(context.Background(), c, 0, c.Len())
}

// ctxCheckEvery is how many positions countRange folds between ctx checks.
const ctxCheckEvery = 4096

func countRange[F any, L comparable](ctx context.Context, c dataset.Collection[F, L], lo, hi int) (Counts[L], error) {
	counts := make(Counts[L])
	for i := lo; i < hi; i++ {
		if (i-lo)%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		pair, err := c.At(i)
		if err != nil {
			return nil, err
		}
		counts[pair.Label]++
	}
	return counts, nil
}

// Pairs materialises c as [c.At(0), ..., c.At(N-1)].
func Pairs[F, L any](c dataset.Collection[F, L]) ([]dataset.Pair[F, L], error) {
	out := make([]dataset.Pair[F, L], 0, c.Len())
	for pair, err := range dataset.Iterate(c) {
		if err != nil {
			return nil, err
		}
		out = append(out, pair)
	}
	return out, nil
}

// Unzip returns all features and all labels of c, index aligned.
func Unzip[F, L any](c dataset.Collection[F, L]) ([]F, []L, error) {
	features := make([]F, 0, c.Len())
	labels := make([]L, 0, c.Len())
	for pair, err := range dataset.Iterate(c) {
		if err != nil {
			return nil, nil, err
		}
		features = append(features, pair.Feature)
		labels = append(labels, pair.Label)
	}
	return features, labels, nil
}
