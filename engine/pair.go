// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"cmp"
	"fmt"

	"github.com/ik5/audsched/instrument"
	"github.com/ik5/audsched/merge"
)

// Pair is an event scheduled at a grid position.
type Pair struct {
	Position int
	Event    instrument.Event
}

// Stream yields pairs in ascending position order and io.EOF at the end.
type Stream = merge.Stream[Pair]

// ByPosition orders pairs by grid position. Negative positions cannot be
// placed on the grid and fail the comparison.
func ByPosition(a, b Pair) (int, error) {
	if a.Position < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativePosition, a.Position)
	}
	if b.Position < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativePosition, b.Position)
	}
	return cmp.Compare(a.Position, b.Position), nil
}

// Events streams pairs from a slice, which must already be ascending.
func Events(pairs ...Pair) Stream {
	return merge.FromSlice(pairs)
}

// Merge interleaves several ascending tracks into one stream.
func Merge(tracks ...Stream) *merge.Iterator[Pair] {
	return merge.New(ByPosition, tracks...)
}
