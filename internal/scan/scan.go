package scan

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"pairset/internal/dataset"
	"pairset/internal/logging"
	"pairset/internal/metrics"
	"pairset/internal/tally"
)

const featureGrid = 16
const featureSize = featureGrid * featureGrid

// RunConfig captures the knobs required by a scan.
type RunConfig struct {
	Roots        map[string][]string
	Limit        int
	Passes       int
	BatchSize    int
	NumWorkers   int
	CountWorkers int
	LogEvery     int
	Seed         int64
	Logger       *logging.Logger
	Metrics      *metrics.Collector
}

// Result is the outcome of a scan.
type Result struct {
	Collection *dataset.Paired[[]float64, int]
	Counts     tally.Counts[int]
	Groups     map[int]*roaring.Bitmap
	Labels     map[int]LabelSummary
	Skipped    int
}

// LabelSummary describes the samples carrying one label.
type LabelSummary struct {
	Count         int
	MeanIntensity float64
}

// Run streams samples from the configured roots into an in-memory
// collection of intensity-grid features and tallies its labels. It stops at
// Limit samples, or when the sampler finishes its passes.
func Run(ctx context.Context, cfg RunConfig) (Result, error) {
	if cfg.Limit < 0 {
		return Result{}, errors.New("scan: limit must be >= 0")
	}
	if cfg.Limit == 0 && cfg.Passes == 0 {
		return Result{}, errors.New("scan: limit or passes must bound the run")
	}
	if cfg.BatchSize <= 0 {
		return Result{}, errors.New("scan: batch size must be > 0")
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = 50
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Noop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewCollector()
	}

	started := time.Now()
	samplerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	samplerCh, samplerErr, err := dataset.StartSampler(samplerCtx, dataset.SamplerOptions{
		Roots:      cfg.Roots,
		Seed:       cfg.Seed,
		NumWorkers: cfg.NumWorkers,
		Passes:     cfg.Passes,
	})
	if err != nil {
		return Result{}, err
	}

	var (
		features [][]float64
		labels   []int
		skipped  int
		window   metrics.Window
	)
	for step := 1; ; step++ {
		want := cfg.BatchSize
		if cfg.Limit > 0 {
			want = min(want, cfg.Limit-len(labels))
		}
		if want == 0 {
			break
		}

		startData := time.Now()
		batch, err := nextBatch(ctx, samplerCh, samplerErr, want, cfg.Logger)
		if err != nil {
			return Result{}, err
		}
		dataTime := time.Since(startData)

		startFold := time.Now()
		features = append(features, batch.inputs...)
		labels = append(labels, batch.labels...)
		skipped += batch.skipped
		foldTime := time.Since(startFold)

		window.Record(len(batch.labels), batch.skipped, dataTime, foldTime)
		cfg.Metrics.RecordBatch(len(batch.labels), batch.skipped)

		if step%cfg.LogEvery == 0 {
			snap := window.Snapshot()
			cfg.Logger.LogProgress(ctx, step, len(labels), snap.SamplesPerSec, snap.AvgDataMS, snap.AvgFoldMS)
		}
		if batch.exhausted {
			break
		}
	}
	cancel()

	collection, err := dataset.New(features, labels)
	if err != nil {
		return Result{}, err
	}
	counts, err := tally.CountByLabelParallel[[]float64, int](ctx, collection, cfg.CountWorkers)
	if err != nil {
		return Result{}, err
	}
	groups, err := tally.GroupByLabel[[]float64, int](collection)
	if err != nil {
		return Result{}, err
	}
	summaries, err := summarizeLabels(collection, groups, cfg.BatchSize)
	if err != nil {
		return Result{}, err
	}
	cfg.Metrics.RecordCounts(counts)
	cfg.Metrics.RecordDuration(time.Since(started))

	return Result{
		Collection: collection,
		Counts:     counts,
		Groups:     groups,
		Labels:     summaries,
		Skipped:    skipped,
	}, nil
}

// summarizeLabels walks each label's posting list in batches and averages
// the grid intensity of its samples.
func summarizeLabels(c dataset.Collection[[]float64, int], groups map[int]*roaring.Bitmap, batchSize int) (map[int]LabelSummary, error) {
	out := make(map[int]LabelSummary, len(groups))
	for label, positions := range groups {
		view := dataset.Subset(c, positions)
		var sum float64
		for batch, err := range dataset.Batches[[]float64, int](view, batchSize) {
			if err != nil {
				return nil, err
			}
			for _, pair := range batch {
				sum += meanOf(pair.Feature)
			}
		}
		summary := LabelSummary{Count: view.Len()}
		if summary.Count > 0 {
			summary.MeanIntensity = sum / float64(summary.Count)
		}
		out[label] = summary
	}
	return out, nil
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

type sampleBatch struct {
	inputs    [][]float64
	labels    []int
	skipped   int
	exhausted bool
}

// nextBatch gathers up to size decodable samples. A closed sample stream
// ends the batch early and marks it exhausted.
func nextBatch(ctx context.Context, samples <-chan dataset.Sample, errs <-chan error, size int, logger *logging.Logger) (sampleBatch, error) {
	out := sampleBatch{
		inputs: make([][]float64, 0, size),
		labels: make([]int, 0, size),
	}
	for len(out.inputs) < size {
		select {
		case <-ctx.Done():
			return sampleBatch{}, ctx.Err()
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				return sampleBatch{}, err
			}
		case sample, ok := <-samples:
			if !ok {
				if err := drainErrors(errs); err != nil {
					return sampleBatch{}, err
				}
				out.exhausted = true
				return out, nil
			}
			features, err := extractFeatures(sample.Image)
			if err != nil {
				out.skipped++
				logger.LogSkipped(ctx, sample.Key, err)
				continue
			}
			out.inputs = append(out.inputs, features)
			out.labels = append(out.labels, sample.Label)
		}
	}
	return out, nil
}

func drainErrors(errs <-chan error) error {
	if errs == nil {
		return nil
	}
	for err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// extractFeatures samples the image on a featureGrid x featureGrid lattice
// and returns mean RGB intensity in [0, 1] per cell.
func extractFeatures(raw []byte) ([]float64, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return nil, errors.New("empty image")
	}
	features := make([]float64, featureSize)
	stepX := float64(width) / float64(featureGrid)
	stepY := float64(height) / float64(featureGrid)
	for gy := 0; gy < featureGrid; gy++ {
		for gx := 0; gx < featureGrid; gx++ {
			px := bounds.Min.X + int(math.Min(float64(width-1), float64(gx)*stepX))
			py := bounds.Min.Y + int(math.Min(float64(height-1), float64(gy)*stepY))
			r, g, b, _ := img.At(px, py).RGBA()
			features[gy*featureGrid+gx] = (float64(r) + float64(g) + float64(b)) / (3 * 65535.0)
		}
	}
	return features, nil
}
