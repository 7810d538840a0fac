// SPDX-License-Identifier: EPL-2.0

// Package merge interleaves independently ascending streams into one
// ascending stream.
package merge

import (
	"errors"
	"fmt"
	"io"
)

// Stream yields items until it returns io.EOF.
type Stream[T any] interface {
	Next() (T, error)
}

// ErrCompare marks a comparator failure.
var ErrCompare = errors.New("merge: comparison failed")

// CompareError reports the first comparator failure. The iterator stops
// after returning it.
type CompareError struct {
	Err error
}

func (e *CompareError) Error() string   { return fmt.Sprintf("%v: %v", ErrCompare, e.Err) }
func (e *CompareError) Unwrap() []error { return []error{ErrCompare, e.Err} }

type track[T any] struct {
	src  Stream[T]
	head T
	full bool
	done bool
}

// Iterator is a k-way merge holding one look-ahead item per track. Each Next
// returns the smallest buffered head; on ties the lower track index wins.
type Iterator[T any] struct {
	cmp    func(a, b T) (int, error)
	tracks []track[T]
	err    error
}

// New merges streams using cmp, which returns a negative number when a
// sorts before b, zero when they tie and a positive number otherwise.
func New[T any](cmp func(a, b T) (int, error), streams ...Stream[T]) *Iterator[T] {
	tracks := make([]track[T], len(streams))
	for i, s := range streams {
		tracks[i].src = s
	}
	return &Iterator[T]{cmp: cmp, tracks: tracks}
}

// Next returns the next item in ascending order, io.EOF once every track is
// drained, or the error that stopped the merge.
func (it *Iterator[T]) Next() (T, error) {
	var zero T
	if it.err != nil {
		return zero, it.err
	}

	best := -1
	for i := range it.tracks {
		tr := &it.tracks[i]
		if tr.done {
			continue
		}
		if !tr.full {
			v, err := tr.src.Next()
			if errors.Is(err, io.EOF) {
				tr.done = true
				continue
			}
			if err != nil {
				it.err = fmt.Errorf("track %d: %w", i, err)
				return zero, it.err
			}
			tr.head, tr.full = v, true
		}

		if best < 0 {
			best = i
			continue
		}
		c, err := it.cmp(tr.head, it.tracks[best].head)
		if err != nil {
			it.err = &CompareError{Err: err}
			return zero, it.err
		}
		if c < 0 {
			best = i
		}
	}

	if best < 0 {
		it.err = io.EOF
		return zero, io.EOF
	}

	tr := &it.tracks[best]
	v := tr.head
	tr.head, tr.full = zero, false
	return v, nil
}

type sliceStream[T any] struct {
	items []T
}

func (s *sliceStream[T]) Next() (T, error) {
	if len(s.items) == 0 {
		var zero T
		return zero, io.EOF
	}
	v := s.items[0]
	s.items = s.items[1:]
	return v, nil
}

// FromSlice streams items in order.
func FromSlice[T any](items []T) Stream[T] {
	return &sliceStream[T]{items: items}
}

// Collect drains s. Items read before an error are returned with it.
func Collect[T any](s Stream[T]) ([]T, error) {
	var out []T
	for {
		v, err := s.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
}
