package metrics

import "time"

// Window accumulates timing stats across multiple batches.
type Window struct {
	samples int
	skipped int
	data    time.Duration
	fold    time.Duration
	batches int
}

// Record adds one batch: samples kept, samples skipped, time spent waiting
// for data and time spent folding it into the collection.
func (w *Window) Record(samples, skipped int, dataTime, foldTime time.Duration) {
	w.samples += samples
	w.skipped += skipped
	w.data += dataTime
	w.fold += foldTime
	w.batches++
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{Samples: w.samples, Skipped: w.skipped}
	total := w.data + w.fold
	if total > 0 {
		snap.SamplesPerSec = float64(w.samples) / total.Seconds()
	}
	if w.batches > 0 {
		snap.AvgDataMS = (w.data.Seconds() * 1000) / float64(w.batches)
		snap.AvgFoldMS = (w.fold.Seconds() * 1000) / float64(w.batches)
	}

	*w = Window{}
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Samples       int
	Skipped       int
	SamplesPerSec float64
	AvgDataMS     float64
	AvgFoldMS     float64
}
