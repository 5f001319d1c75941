package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorGather(t *testing.T) {
	c := NewCollector()
	c.RecordBatch(10, 2)
	c.RecordBatch(5, 0)
	c.RecordCounts(map[int]int{0: 9, 1: 6})
	c.RecordDuration(1500 * time.Millisecond)

	families, err := c.Registry().Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			name := mf.GetName()
			for _, lp := range m.GetLabel() {
				name += "/" + lp.GetValue()
			}
			switch {
			case m.GetCounter() != nil:
				values[name] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				values[name] = m.GetGauge().GetValue()
			}
		}
	}
	assert.Equal(t, 15.0, values["pairset_samples_total"])
	assert.Equal(t, 2.0, values["pairset_samples_skipped_total"])
	assert.Equal(t, 9.0, values["pairset_label_samples/0"])
	assert.Equal(t, 6.0, values["pairset_label_samples/1"])
	assert.Equal(t, 1.5, values["pairset_scan_duration_seconds"])
}

func TestCollectorRecordCountsResets(t *testing.T) {
	c := NewCollector()
	c.RecordCounts(map[int]int{0: 1, 7: 1})
	c.RecordCounts(map[int]int{3: 2})

	families, err := c.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "pairset_label_samples" {
			continue
		}
		require.Len(t, mf.GetMetric(), 1)
		assert.Equal(t, "3", mf.GetMetric()[0].GetLabel()[0].GetValue())
	}
}

func TestCollectorWriteTextfile(t *testing.T) {
	c := NewCollector()
	c.RecordBatch(3, 1)

	path := filepath.Join(t.TempDir(), "pairset.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pairset_samples_total 3")
	assert.Contains(t, string(data), "pairset_samples_skipped_total 1")
}
