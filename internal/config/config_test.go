package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const demoYAML = `
# demo run over two regions
roots:
  - /data/region-a
  - /data/region-b
limit: 5000
batch_size: 32
num_workers: 4
count_workers: 2
seed: 7
log_format: json
`

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte(demoYAML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.LogEvery, "Load must not fill defaults")
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"/data/region-a", "/data/region-b"}, cfg.Roots)
	assert.Equal(t, 5000, cfg.Limit)
	assert.Equal(t, 0, cfg.Passes)
	assert.Equal(t, 32, cfg.BatchSize)
	assert.Equal(t, 4, cfg.NumWorkers)
	assert.Equal(t, 2, cfg.CountWorkers)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 50, cfg.LogEvery)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLimitOverrideKeepsRunUnbounded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roots.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roots: [/a]\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.ApplyOverrides(Overrides{Limit: 100})
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 100, cfg.Limit)
	assert.Equal(t, 0, cfg.Passes)
}

func TestLoadWithoutLimitDefaultsToOnePass(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roots.yaml")
	require.NoError(t, os.WriteFile(path, []byte("roots: [/a]\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.ApplyOverrides(Overrides{})
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Passes)
}

func TestParseRejectsUnknownKey(t *testing.T) {
	_, err := Parse(strings.NewReader("roots: [/a]\nsteps: 10\n"))
	assert.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cfg.Roots)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyOverrides(t *testing.T) {
	cfg := &Config{Roots: []string{"/a"}, Limit: 10, Seed: 1}
	cfg.ApplyOverrides(Overrides{
		Roots:       []string{"/b", "/c"},
		BatchSize:   8,
		MetricsFile: "/tmp/pairset.prom",
	})
	assert.Equal(t, []string{"/b", "/c"}, cfg.Roots)
	assert.Equal(t, 10, cfg.Limit)
	assert.Equal(t, 8, cfg.BatchSize)
	assert.Equal(t, int64(1), cfg.Seed)
	assert.Equal(t, "/tmp/pairset.prom", cfg.MetricsFile)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"no roots", Config{}, "at least one dataset root"},
		{"blank root", Config{Roots: []string{" "}}, "roots[0] is empty"},
		{"negative limit", Config{Roots: []string{"/a"}, Limit: -1}, "limit"},
		{"negative passes", Config{Roots: []string{"/a"}, Passes: -1}, "passes"},
		{"negative batch", Config{Roots: []string{"/a"}, BatchSize: -1}, "batch_size"},
		{"bad level", Config{Roots: []string{"/a"}, LogLevel: "trace"}, "log_level"},
		{"bad format", Config{Roots: []string{"/a"}, LogFormat: "xml"}, "log_format"},
		{"ok", Config{Roots: []string{"/a"}}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestValidateBoundsRun(t *testing.T) {
	cfg := &Config{Roots: []string{"/a"}}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Passes)
	assert.Equal(t, 64, cfg.BatchSize)
	assert.Equal(t, 1, cfg.NumWorkers)

	var nilCfg *Config
	assert.Error(t, nilCfg.Validate())
}
