// SPDX-License-Identifier: EPL-2.0

package instrument

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/google/uuid"
	"github.com/ik5/audsched/audio"
)

// erased is the type-erased surface every Handle forwards to.
type erased interface {
	nextSample() (audio.Sample, bool, error)
	transform(v any) error
	help() string
	value() any
}

type adapter[E any, T Instrument[E]] struct {
	inst T
}

func (a adapter[E, T]) nextSample() (audio.Sample, bool, error) { return a.inst.NextSample() }
func (a adapter[E, T]) help() string                           { return a.inst.Help() }
func (a adapter[E, T]) value() any                             { return a.inst }

func (a adapter[E, T]) transform(v any) error {
	ev, err := Decode[E](v)
	if err != nil {
		return err
	}
	return a.inst.Transform(ev)
}

// Handle is a shared, lock-guarded reference to one instrument. Copies of
// the pointer observe the same state. Every operation holds the lock only
// for its own duration.
//
// A panic inside an instrument poisons the handle: the panic propagates and
// every later operation fails with ErrPoisoned.
type Handle struct {
	id        uuid.UUID
	name      string
	instType  reflect.Type
	eventType reflect.Type

	mu       sync.Mutex
	poisoned bool
	inst     erased
}

// New wraps inst in a Handle that decodes opaque events into E.
func New[E any, T Instrument[E]](inst T) *Handle {
	return &Handle{
		id:        uuid.New(),
		name:      reflect.TypeFor[T]().String(),
		instType:  reflect.TypeFor[T](),
		eventType: reflect.TypeFor[E](),
		inst:      adapter[E, T]{inst: inst},
	}
}

func (h *Handle) ID() uuid.UUID { return h.id }

// Name is the factory name, or the Go type name for handles built with New.
func (h *Handle) Name() string { return h.name }

// Type is the concrete instrument type behind the handle.
func (h *Handle) Type() reflect.Type { return h.instType }

// EventType is the type events are decoded into before Transform.
func (h *Handle) EventType() reflect.Type { return h.eventType }

func (h *Handle) String() string {
	return fmt.Sprintf("%s#%s", h.name, h.id.String()[:8])
}

func (h *Handle) lock() error {
	h.mu.Lock()
	if h.poisoned {
		h.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrPoisoned, h)
	}
	return nil
}

func (h *Handle) unlock() {
	if r := recover(); r != nil {
		h.poisoned = true
		h.mu.Unlock()
		panic(r)
	}
	h.mu.Unlock()
}

// NextSample pulls one frame. Errors are always *SourceError, or
// ErrPoisoned; a plain error from the instrument is reported as Fatal.
func (h *Handle) NextSample() (s audio.Sample, ok bool, err error) {
	if err := h.lock(); err != nil {
		return audio.Empty(), false, err
	}
	defer h.unlock()

	s, ok, err = h.inst.nextSample()
	if err == nil {
		return s, ok, nil
	}

	var se *SourceError
	if !errors.As(err, &se) {
		se = FatalError(err)
	}
	return audio.Empty(), false, se
}

// Transform decodes v into the instrument's event type and applies it.
// A value of the wrong shape yields a *DecodeError; a failure inside the
// instrument a *TransitionError.
func (h *Handle) Transform(v any) error {
	if err := h.lock(); err != nil {
		return err
	}
	defer h.unlock()

	err := h.inst.transform(v)
	if err == nil {
		return nil
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &TransitionError{Instrument: h.String(), Err: err}
}

// Help describes the instrument.
func (h *Handle) Help() string {
	if err := h.lock(); err != nil {
		return err.Error()
	}
	defer h.unlock()

	return h.inst.help()
}

// Close releases the instrument's resources if it holds any.
func (h *Handle) Close() error {
	if err := h.lock(); err != nil {
		return err
	}
	defer h.unlock()

	if c, ok := h.inst.value().(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Poisoned reports whether a panic left the instrument unusable.
func (h *Handle) Poisoned() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.poisoned
}

// As returns the concrete instrument after checking the handle's type tag.
// The value is shared with the handle; use With to touch its state.
func As[T any](h *Handle) (T, error) {
	var zero T
	if h.instType != reflect.TypeFor[T]() {
		return zero, fmt.Errorf("%w: %s holds %v, not %v", ErrTypeMismatch, h, h.instType, reflect.TypeFor[T]())
	}
	return h.inst.value().(T), nil
}

// With runs fn on the concrete instrument while holding the handle's lock.
func With[T any](h *Handle, fn func(inst T) error) error {
	inst, err := As[T](h)
	if err != nil {
		return err
	}
	if err := h.lock(); err != nil {
		return err
	}
	defer h.unlock()

	return fn(inst)
}
