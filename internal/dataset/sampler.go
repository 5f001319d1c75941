package dataset

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
)

// SamplerOptions configures the multi-root sampler.
type SamplerOptions struct {
	Roots      map[string][]string
	Seed       int64
	NumWorkers int
	PendingCap int
	// Passes bounds how many times every shard is visited. Zero streams
	// forever; otherwise both channels close after the last pass.
	Passes int
}

// StartSampler launches the multi-root sampler pipeline.
func StartSampler(parent context.Context, opts SamplerOptions) (<-chan Sample, <-chan error, error) {
	if len(opts.Roots) == 0 {
		return nil, nil, errors.New("sampler: no dataset roots provided")
	}
	total := 0
	for _, shards := range opts.Roots {
		total += len(shards)
	}
	if total == 0 {
		return nil, nil, fmt.Errorf("sampler: %w", ErrNoShards)
	}
	if opts.Passes < 0 {
		return nil, nil, fmt.Errorf("sampler: passes must be >= 0 (got %d)", opts.Passes)
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 1
	}
	if opts.PendingCap <= 0 {
		opts.PendingCap = defaultPendingCap
	}
	if opts.Seed == 0 {
		opts.Seed = 42
	}

	ctx, cancel := context.WithCancel(parent)

	jobs := make(chan shardJob, opts.NumWorkers)
	cursors := make(chan shardCursor, opts.NumWorkers)
	out := make(chan Sample, opts.NumWorkers*2)
	errCh := make(chan error, opts.NumWorkers)

	rng := rand.New(rand.NewSource(opts.Seed))

	go produceJobs(ctx, jobs, opts.Roots, rng, opts.Passes)

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, jobs, cursors, opts.PendingCap)
		}()
	}

	go func() {
		wg.Wait()
		close(cursors)
	}()

	go func() {
		defer cancel()
		defer close(out)
		defer close(errCh)
		runAggregator(ctx, cursors, out, errCh)
	}()

	return out, errCh, nil
}

type shardJob struct {
	id   int64
	root string
	path string
}

type shardCursor struct {
	id      int64
	samples <-chan Sample
	errCh   <-chan error
}

func worker(ctx context.Context, jobs <-chan shardJob, cursors chan<- shardCursor, pendingCap int) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			samples, errCh := StreamShard(ctx, job.path, pendingCap)
			cursor := shardCursor{id: job.id, samples: samples, errCh: errCh}
			select {
			case <-ctx.Done():
				return
			case cursors <- cursor:
			}
		}
	}
}

func runAggregator(ctx context.Context, cursors <-chan shardCursor, out chan<- Sample, errCh chan<- error) {
	pending := make(map[int64]shardCursor)
	var nextID int64
	for {
		cursor, ok := pending[nextID]
		if !ok {
			select {
			case <-ctx.Done():
				return
			case next, open := <-cursors:
				if !open {
					return
				}
				pending[next.id] = next
			}
			continue
		}

		if !forwardShard(ctx, cursor, out) {
			return
		}
		if err := <-cursor.errCh; err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
			return
		}
		delete(pending, nextID)
		nextID++
	}
}

// forwardShard copies one shard's samples to out. It reports false when ctx
// ends first.
func forwardShard(ctx context.Context, cursor shardCursor, out chan<- Sample) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case sample, ok := <-cursor.samples:
			if !ok {
				return true
			}
			select {
			case <-ctx.Done():
				return false
			case out <- sample:
			}
		}
	}
}

func produceJobs(ctx context.Context, jobs chan<- shardJob, roots map[string][]string, rng *rand.Rand, passes int) {
	defer close(jobs)
	var jobID int64
	for pass := 0; passes == 0 || pass < passes; pass++ {
		order := buildRoundRobinOrder(roots, rng)
		if len(order) == 0 {
			return
		}
		for _, entry := range order {
			select {
			case <-ctx.Done():
				return
			case jobs <- shardJob{id: jobID, root: entry.root, path: entry.path}:
				jobID++
			}
		}
	}
}

type orderEntry struct {
	root string
	path string
}

// buildRoundRobinOrder interleaves one shard per root at a time. Roots are
// shuffled in sorted name order so a seed always yields the same order.
func buildRoundRobinOrder(roots map[string][]string, rng *rand.Rand) []orderEntry {
	rootNames := make([]string, 0, len(roots))
	for root, shards := range roots {
		if len(shards) > 0 {
			rootNames = append(rootNames, root)
		}
	}
	sort.Strings(rootNames)
	copied := make(map[string][]string, len(rootNames))
	for _, root := range rootNames {
		shards := append([]string(nil), roots[root]...)
		if rng != nil {
			rng.Shuffle(len(shards), func(i, j int) {
				shards[i], shards[j] = shards[j], shards[i]
			})
		}
		copied[root] = shards
	}
	var order []orderEntry
	for {
		advanced := false
		for _, root := range rootNames {
			shards := copied[root]
			if len(shards) == 0 {
				continue
			}
			order = append(order, orderEntry{root: root, path: shards[0]})
			copied[root] = shards[1:]
			advanced = true
		}
		if !advanced {
			break
		}
	}
	return order
}
