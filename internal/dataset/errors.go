package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch indicates the feature and label sequences differ in length.
	ErrLengthMismatch = errors.New("dataset: features and labels differ in length")
	// ErrIndexOutOfRange indicates a position outside [0, Len()).
	ErrIndexOutOfRange = errors.New("dataset: index out of range")
	// ErrInvalidBatchSize indicates a non-positive batch size.
	ErrInvalidBatchSize = errors.New("dataset: batch size must be > 0")
	// ErrNoShards indicates a dataset root holds no shard archives.
	ErrNoShards = errors.New("dataset: no shards discovered")
	// ErrPendingOverflow indicates the pairing map exceeded the configured bound.
	ErrPendingOverflow = errors.New("webdataset: pending pair buffer exceeded")
)

// LengthMismatchError reports the two lengths seen at construction.
type LengthMismatchError struct {
	Features int
	Labels   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%v: %d features, %d labels", ErrLengthMismatch, e.Features, e.Labels)
}

// Is reports whether target is ErrLengthMismatch.
func (e *LengthMismatchError) Is(target error) bool { return target == ErrLengthMismatch }

// IndexOutOfRangeError reports the rejected index and the collection length.
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%v: index %d, length %d", ErrIndexOutOfRange, e.Index, e.Len)
}

// Is reports whether target is ErrIndexOutOfRange.
func (e *IndexOutOfRangeError) Is(target error) bool { return target == ErrIndexOutOfRange }
