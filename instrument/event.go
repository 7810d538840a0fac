// SPDX-License-Identifier: EPL-2.0

package instrument

import (
	"fmt"
	"reflect"
)

// Event binds an opaque value to the instrument it must be delivered to.
type Event struct {
	Handle *Handle
	Value  any
}

// Deliver applies the event to its instrument.
func (e Event) Deliver() error {
	return e.Handle.Transform(e.Value)
}

func (e Event) String() string {
	return fmt.Sprintf("%v -> %s", e.Value, e.Handle)
}

// Check verifies statically that E is the event type of ev's instrument.
func Check[E any](ev Event) error {
	if want := ev.Handle.EventType(); want != reflect.TypeFor[E]() {
		return fmt.Errorf("%w: %s expects %v events, not %v", ErrTypeMismatch, ev.Handle, want, reflect.TypeFor[E]())
	}
	return nil
}

// Bind pairs a typed event with h, failing when h expects another type.
func Bind[E any](h *Handle, event E) (Event, error) {
	ev := Event{Handle: h, Value: event}
	if err := Check[E](ev); err != nil {
		return Event{}, err
	}
	return ev, nil
}
