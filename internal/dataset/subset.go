package dataset

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// SubsetView is a read-only view over selected positions of a parent
// collection, in ascending position order.
type SubsetView[F, L any] struct {
	parent    Collection[F, L]
	positions *roaring.Bitmap
}

// Subset returns a view of c restricted to positions. The bitmap is cloned,
// so later changes to positions do not affect the view.
func Subset[F, L any](c Collection[F, L], positions *roaring.Bitmap) *SubsetView[F, L] {
	if positions == nil {
		positions = roaring.New()
	}
	return &SubsetView[F, L]{parent: c, positions: positions.Clone()}
}

// Len returns the number of selected positions.
func (s *SubsetView[F, L]) Len() int {
	return int(s.positions.GetCardinality())
}

// At returns the pair at the i-th smallest selected position.
func (s *SubsetView[F, L]) At(i int) (Pair[F, L], error) {
	if i < 0 || i >= s.Len() {
		return Pair[F, L]{}, &IndexOutOfRangeError{Index: i, Len: s.Len()}
	}
	pos, err := s.positions.Select(uint32(i))
	if err != nil {
		return Pair[F, L]{}, &IndexOutOfRangeError{Index: i, Len: s.Len()}
	}
	return s.parent.At(int(pos))
}
