package dataset

import (
	"archive/tar"
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Sample is a paired image/label record from a WebDataset shard.
type Sample struct {
	Key   string
	Image []byte
	Label int
}

const defaultPendingCap = 1024

// StreamShard streams paired samples from the shard at path. Shards ending
// in .zst or .lz4 are decompressed on the fly.
func StreamShard(ctx context.Context, path string, pendingCap int) (<-chan Sample, <-chan error) {
	if pendingCap <= 0 {
		pendingCap = defaultPendingCap
	}
	out := make(chan Sample)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		f, err := os.Open(path)
		if err != nil {
			errCh <- fmt.Errorf("open shard: %w", err)
			return
		}
		defer f.Close()

		r, closeFn, err := shardReader(path, bufio.NewReader(f))
		if err != nil {
			errCh <- fmt.Errorf("open shard %s: %w", filepath.Base(path), err)
			return
		}
		defer closeFn()

		if err := pairMembers(ctx, tar.NewReader(r), pendingCap, out); err != nil {
			errCh <- err
		}
	}()

	return out, errCh
}

// shardReader wraps r with the decompressor implied by the path suffix.
func shardReader(path string, r io.Reader) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return dec, dec.Close, nil
	case ".lz4":
		return lz4.NewReader(r), func() {}, nil
	default:
		return r, func() {}, nil
	}
}

// pairMembers joins image and .cls members sharing a key and emits each
// pair as soon as both halves have been read.
func pairMembers(ctx context.Context, tr *tar.Reader, pendingCap int, out chan<- Sample) error {
	pending := make(map[string]*partial)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read tar: %w", err)
		}
		if hdr.FileInfo().IsDir() {
			continue
		}
		name := filepath.Base(hdr.Name)
		ext := strings.ToLower(filepath.Ext(name))
		key := strings.TrimSuffix(name, filepath.Ext(name))

		var part *partial
		switch ext {
		case ".jpg", ".jpeg", ".png":
			data, err := io.ReadAll(tr)
			if err != nil {
				return fmt.Errorf("read image %s: %w", name, err)
			}
			part = pendingFor(pending, key)
			part.image = data
		case ".cls":
			payload, err := io.ReadAll(tr)
			if err != nil {
				return fmt.Errorf("read label %s: %w", name, err)
			}
			label, err := strconv.Atoi(strings.TrimSpace(string(payload)))
			if err != nil {
				return fmt.Errorf("parse label %s: %w", name, err)
			}
			part = pendingFor(pending, key)
			part.label = &label
		default:
			continue
		}

		if len(pending) > pendingCap {
			return ErrPendingOverflow
		}
		if !part.ready() {
			continue
		}
		delete(pending, key)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case out <- Sample{Key: key, Image: part.image, Label: *part.label}:
		}
	}

	if len(pending) > 0 {
		return fmt.Errorf("webdataset: %d samples incomplete", len(pending))
	}
	return nil
}

type partial struct {
	image []byte
	label *int
}

func (p *partial) ready() bool {
	return len(p.image) > 0 && p.label != nil
}

func pendingFor(pending map[string]*partial, key string) *partial {
	part := pending[key]
	if part == nil {
		part = &partial{}
		pending[key] = part
	}
	return part
}
