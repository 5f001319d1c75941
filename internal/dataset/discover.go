package dataset

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"slices"
)

var shardRegexp = regexp.MustCompile(`^shard-[0-9]{6,}\.tar(\.zst|\.lz4)?$`)

// DiscoverShards returns paths to shard archives beneath root, plain or
// compressed, in lexical order.
func DiscoverShards(root string) ([]string, error) {
	entries := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if shardRegexp.MatchString(d.Name()) {
			entries = append(entries, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discover shards: %w", err)
	}
	slices.Sort(entries)
	return entries, nil
}

// DiscoverByRoot scans each root independently. A root without shards
// fails with ErrNoShards so a misconfigured path is not silently skipped.
func DiscoverByRoot(roots []string) (map[string][]string, error) {
	result := make(map[string][]string, len(roots))
	for _, root := range roots {
		if _, dup := result[root]; dup {
			continue
		}
		shards, err := DiscoverShards(root)
		if err != nil {
			return nil, err
		}
		if len(shards) == 0 {
			return nil, fmt.Errorf("%w under %s", ErrNoShards, root)
		}
		result[root] = shards
	}
	return result, nil
}
