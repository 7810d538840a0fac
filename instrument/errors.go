// SPDX-License-Identifier: EPL-2.0

package instrument

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrConstruction      = errors.New("instrument construction failed")
	ErrUnknownRoute      = errors.New("unknown route")
	ErrUnknownInstrument = errors.New("unknown instrument")
	ErrDecode            = errors.New("event decode failed")
	ErrTransition        = errors.New("state transition failed")
	ErrPoisoned          = errors.New("instrument poisoned by an earlier panic")
	ErrTypeMismatch      = errors.New("instrument type mismatch")
)

// ConstructionError reports a failed Factory.Initialize.
type ConstructionError struct {
	Instrument string
	Route      string
	Err        error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("initializing %s via route %q: %v", e.Instrument, e.Route, e.Err)
}

func (e *ConstructionError) Unwrap() []error { return []error{ErrConstruction, e.Err} }

// DecodeError reports an opaque value that does not fit the expected type.
// The instrument's state is untouched.
type DecodeError struct {
	Want reflect.Type
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding value into %v: %v", e.Want, e.Err)
}

func (e *DecodeError) Unwrap() []error { return []error{ErrDecode, e.Err} }

// TransitionError wraps a failure raised by an instrument's own Transform.
type TransitionError struct {
	Instrument string
	Err        error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s rejected event: %v", e.Instrument, e.Err)
}

func (e *TransitionError) Unwrap() []error { return []error{ErrTransition, e.Err} }

// Kind separates recoverable from permanent source failures.
type Kind uint8

const (
	// Once means this pull failed but the instrument may be polled again.
	Once Kind = iota + 1
	// Fatal means the instrument is permanently broken.
	Fatal
)

func (k Kind) String() string {
	switch k {
	case Once:
		return "once"
	case Fatal:
		return "fatal"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// SourceError is the error returned from NextSample.
type SourceError struct {
	Kind Kind
	Err  error
}

func OnceError(err error) *SourceError  { return &SourceError{Kind: Once, Err: err} }
func FatalError(err error) *SourceError { return &SourceError{Kind: Fatal, Err: err} }

func (e *SourceError) Error() string {
	return fmt.Sprintf("source error (%s): %v", e.Kind, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// IsOnce reports whether err carries a recoverable source failure.
func IsOnce(err error) bool {
	var se *SourceError
	return errors.As(err, &se) && se.Kind == Once
}

// IsFatal reports whether err carries a permanent source failure.
func IsFatal(err error) bool {
	var se *SourceError
	return errors.As(err, &se) && se.Kind == Fatal
}
