package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowSnapshot(t *testing.T) {
	var w Window
	w.Record(64, 1, 20*time.Millisecond, 10*time.Millisecond)
	w.Record(64, 0, 10*time.Millisecond, 20*time.Millisecond)
	snap := w.Snapshot()

	assert.InDelta(t, 2133.3333, snap.SamplesPerSec, 1)
	assert.InDelta(t, 15.0, snap.AvgDataMS, 0.001)
	assert.InDelta(t, 15.0, snap.AvgFoldMS, 0.001)
	assert.Equal(t, 128, snap.Samples)
	assert.Equal(t, 1, snap.Skipped)
	assert.Equal(t, Window{}, w, "window was not reset")
}

func TestWindowEmptySnapshot(t *testing.T) {
	var w Window
	assert.Equal(t, Snapshot{}, w.Snapshot())
}
