package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverShardsMatchesCompressed(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "shard-000000.tar"))
	mustWrite(t, filepath.Join(dir, "nested", "shard-000001.tar.zst"))
	mustWrite(t, filepath.Join(dir, "shard-000002.tar.lz4"))
	mustWrite(t, filepath.Join(dir, "shard-000003.tar.gz"))
	mustWrite(t, filepath.Join(dir, "ignore.txt"))

	shards, err := DiscoverShards(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "nested", "shard-000001.tar.zst"),
		filepath.Join(dir, "shard-000000.tar"),
		filepath.Join(dir, "shard-000002.tar.lz4"),
	}, shards)
}

func TestDiscoverShardsGrowth(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "shard-000000.tar"))

	first, err := DiscoverShards(dir)
	require.NoError(t, err)
	require.Len(t, first, 1)

	mustWrite(t, filepath.Join(dir, "shard-000001.tar"))

	second, err := DiscoverShards(dir)
	require.NoError(t, err)
	assert.Len(t, second, 2)
}

func TestDiscoverByRoot(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()
	mustWrite(t, filepath.Join(rootA, "shard-000000.tar"))
	mustWrite(t, filepath.Join(rootB, "shard-000000.tar"))
	mustWrite(t, filepath.Join(rootB, "shard-000001.tar"))

	roots, err := DiscoverByRoot([]string{rootA, rootB, rootA})
	require.NoError(t, err)
	assert.Len(t, roots, 2)
	assert.Len(t, roots[rootA], 1)
	assert.Len(t, roots[rootB], 2)
}

func TestDiscoverByRootEmpty(t *testing.T) {
	_, err := DiscoverByRoot([]string{t.TempDir()})
	assert.ErrorIs(t, err, ErrNoShards)
}

func TestDiscoverShardsMissingRoot(t *testing.T) {
	_, err := DiscoverShards(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))
}
