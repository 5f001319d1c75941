package tally

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"pairset/internal/dataset"
)

// ErrTooLarge indicates a collection with positions beyond the uint32 range
// of a roaring bitmap.
var ErrTooLarge = errors.New("tally: collection exceeds uint32 positions")

// CountByLabelParallel splits c into contiguous ranges, counts each range in
// its own goroutine and merges the partial tables. The result equals
// CountByLabel. Each worker checks ctx every few thousand positions and
// aborts with ctx.Err(). The collection must be safe for concurrent At
// calls, which holds for *dataset.Paired.
func CountByLabelParallel[F any, L comparable](ctx context.Context, c dataset.Collection[F, L], workers int) (Counts[L], error) {
	n := c.Len()
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = max(n, 1)
	}
	if workers == 1 {
		return countRange(ctx, c, 0, n)
	}

	partials := make([]Counts[L], workers)
	g, gctx := errgroup.WithContext(ctx)
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, n)
		g.Go(func() error {
			counts, err := countRange(gctx, c, lo, hi)
			if err != nil {
				return err
			}
			partials[w] = counts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := make(Counts[L])
	for _, partial := range partials {
		total = Merge(total, partial)
	}
	return total, nil
}

// GroupByLabel returns, per label, the positions in c holding that label.
// Collections longer than math.MaxUint32+1 fail with ErrTooLarge.
func GroupByLabel[F any, L comparable](c dataset.Collection[F, L]) (map[L]*roaring.Bitmap, error) {
	n := c.Len()
	if uint64(n) > math.MaxUint32+1 {
		return nil, fmt.Errorf("%w: %d", ErrTooLarge, n)
	}
	groups := make(map[L]*roaring.Bitmap)
	for i := 0; i < n; i++ {
		pair, err := c.At(i)
		if err != nil {
			return nil, err
		}
		bm, ok := groups[pair.Label]
		if !ok {
			bm = roaring.New()
			groups[pair.Label] = bm
		}
		bm.Add(uint32(i))
	}
	return groups, nil
}
