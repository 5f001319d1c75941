package dataset

import "iter"

// Pair is one element of a labelled collection.
type Pair[F, L any] struct {
	Feature F
	Label   L
}

// Collection is read-only positional access over labelled pairs.
type Collection[F, L any] interface {
	// Len returns the number of pairs.
	Len() int
	// At returns the pair at position i, or an *IndexOutOfRangeError.
	At(i int) (Pair[F, L], error)
}

// Paired adapts two equal-length slices into a Collection.
// It is immutable after New.
type Paired[F, L any] struct {
	features []F
	labels   []L
}

var _ Collection[int, int] = (*Paired[int, int])(nil)

// New copies features and labels into a Paired collection.
func New[F, L any](features []F, labels []L) (*Paired[F, L], error) {
	if len(features) != len(labels) {
		return nil, &LengthMismatchError{Features: len(features), Labels: len(labels)}
	}
	return &Paired[F, L]{
		features: append([]F(nil), features...),
		labels:   append([]L(nil), labels...),
	}, nil
}

// Len returns the common length of the two sequences.
func (p *Paired[F, L]) Len() int {
	return len(p.features)
}

// At returns (features[i], labels[i]).
func (p *Paired[F, L]) At(i int) (Pair[F, L], error) {
	if i < 0 || i >= len(p.features) {
		return Pair[F, L]{}, &IndexOutOfRangeError{Index: i, Len: len(p.features)}
	}
	return Pair[F, L]{Feature: p.features[i], Label: p.labels[i]}, nil
}

// All returns a restartable sequence of pairs in index order.
func (p *Paired[F, L]) All() iter.Seq[Pair[F, L]] {
	return func(yield func(Pair[F, L]) bool) {
		for i := range p.features {
			if !yield(Pair[F, L]{Feature: p.features[i], Label: p.labels[i]}) {
				return
			}
		}
	}
}

// Iterate walks any Collection in index order. The first error from At is
// yielded once and ends the sequence.
func Iterate[F, L any](c Collection[F, L]) iter.Seq2[Pair[F, L], error] {
	return func(yield func(Pair[F, L], error) bool) {
		n := c.Len()
		for i := 0; i < n; i++ {
			pair, err := c.At(i)
			if err != nil {
				yield(Pair[F, L]{}, err)
				return
			}
			if !yield(pair, nil) {
				return
			}
		}
	}
}

// Batches yields consecutive slices of at most size pairs. The final batch
// may be short.
func Batches[F, L any](c Collection[F, L], size int) iter.Seq2[[]Pair[F, L], error] {
	return func(yield func([]Pair[F, L], error) bool) {
		if size <= 0 {
			yield(nil, ErrInvalidBatchSize)
			return
		}
		batch := make([]Pair[F, L], 0, size)
		for pair, err := range Iterate(c) {
			if err != nil {
				yield(nil, err)
				return
			}
			batch = append(batch, pair)
			if len(batch) == size {
				if !yield(batch, nil) {
					return
				}
				batch = make([]Pair[F, L], 0, size)
			}
		}
		if len(batch) > 0 {
			yield(batch, nil)
		}
	}
}
