package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"pairset/internal/config"
	"pairset/internal/dataset"
	"pairset/internal/logging"
	"pairset/internal/metrics"
	"pairset/internal/scan"
	"pairset/internal/tally"
)

// rootList collects repeated -root flags.
type rootList []string

func (r *rootList) String() string { return strings.Join(*r, ",") }

func (r *rootList) Set(v string) error {
	*r = append(*r, v)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pairset: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var roots rootList
	cfgPath := flag.String("config", "configs/demo.yaml", "Path to YAML config")
	flag.Var(&roots, "root", "Dataset root (repeatable, overrides config roots)")
	limit := flag.Int("limit", 0, "Stop after this many samples")
	passes := flag.Int("passes", 0, "Number of passes over every shard")
	batchSize := flag.Int("batch-size", 0, "Samples per batch")
	numWorkers := flag.Int("num-workers", 0, "Number of shard reader workers")
	countWorkers := flag.Int("count-workers", 0, "Number of label counting workers")
	seed := flag.Int64("seed", 0, "PRNG seed for shard order")
	logEvery := flag.Int("log-every", 0, "Log progress every N batches")
	metricsFile := flag.String("metrics-file", "", "Write prometheus textfile metrics to this path")

	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.ApplyOverrides(config.Overrides{
		Roots:        roots,
		Limit:        *limit,
		Passes:       *passes,
		BatchSize:    *batchSize,
		NumWorkers:   *numWorkers,
		CountWorkers: *countWorkers,
		Seed:         *seed,
		LogEvery:     *logEvery,
		MetricsFile:  *metricsFile,
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shards, err := dataset.DiscoverByRoot(cfg.Roots)
	if err != nil {
		return err
	}
	for _, root := range cfg.Roots {
		logger.LogShards(ctx, root, len(shards[root]))
	}

	collector := metrics.NewCollector()
	res, err := scan.Run(ctx, scan.RunConfig{
		Roots:        shards,
		Limit:        cfg.Limit,
		Passes:       cfg.Passes,
		BatchSize:    cfg.BatchSize,
		NumWorkers:   cfg.NumWorkers,
		CountWorkers: cfg.CountWorkers,
		LogEvery:     cfg.LogEvery,
		Seed:         cfg.Seed,
		Logger:       logger,
		Metrics:      collector,
	})
	if err != nil {
		logger.LogSummary(ctx, 0, 0, 0, err)
		return err
	}

	total := res.Counts.Total()
	for _, label := range tally.SortedLabels(res.Counts) {
		logger.LogCount(ctx, label, res.Counts.Get(label), total, res.Labels[label].MeanIntensity)
	}
	logger.LogSummary(ctx, res.Collection.Len(), res.Skipped, len(res.Counts), nil)

	if cfg.MetricsFile != "" {
		if err := collector.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
