// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInterval  = errors.New("interval must be at least 1")
	ErrInvalidDuration  = errors.New("duration must not be negative")
	ErrOutOfOrder       = errors.New("event position is behind the grid")
	ErrNegativePosition = errors.New("negative grid position")
	ErrNilHandle        = errors.New("event has no instrument")
)

// ErrorKind classifies run-ending failures.
type ErrorKind uint8

const (
	// KindSource is a Fatal source error or a poisoned instrument.
	KindSource ErrorKind = iota + 1
	// KindDispatch is a failure delivering an event.
	KindDispatch
	// KindStream is a failure reading the event stream.
	KindStream
)

func (k ErrorKind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindDispatch:
		return "dispatch"
	case KindStream:
		return "event stream"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Error stops the engine. Every later Next returns the same value.
type Error struct {
	Kind       ErrorKind
	Position   int
	Instrument string
	Err        error
}

func (e *Error) Error() string {
	if e.Instrument == "" {
		return fmt.Sprintf("engine: %s error at tick %d: %v", e.Kind, e.Position, e.Err)
	}
	return fmt.Sprintf("engine: %s error at tick %d (%s): %v", e.Kind, e.Position, e.Instrument, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
