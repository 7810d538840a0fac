// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/ik5/audsched/audio"
	"github.com/ik5/audsched/instrument"
)

// Tick is the output of one engine step: one frame from every active
// instrument that was not exhausted. Empty frames are kept.
type Tick struct {
	// Position is the grid index the frame belongs to.
	Position int
	// Frame is the offset of the frame inside its grid tick.
	Frame int
	// Samples holds the produced frames in activation order.
	Samples []audio.Sample
	// Sources holds the instrument behind each entry of Samples.
	Sources []*instrument.Handle
}

// Exhausted reports whether every active instrument was exhausted. A tick
// holding only empty frames is not exhausted.
func (t Tick) Exhausted() bool { return len(t.Samples) == 0 }

// Engine walks a uniform grid of interval frames per tick. At every tick
// boundary it dispatches the events scheduled for that tick, then pulls one
// frame per step from every active instrument. It stops once the ticks
// started cover duration frames; running out of events or of sound does not
// end the run.
//
// An Engine is not safe for concurrent use. The instrument handles it
// drives are.
type Engine struct {
	active []*instrument.Handle
	known  map[*instrument.Handle]struct{}

	events     Stream
	pending    Pair
	hasPending bool
	drained    bool

	index    int
	counter  int
	interval int
	duration int

	logger *slog.Logger
	err    error
}

// New creates an engine over instruments. Instruments that receive an
// event join the active set on their first dispatch if they were not
// listed. events may be nil.
func New(instruments []*instrument.Handle, events Stream, interval, duration int, opts ...Option) (*Engine, error) {
	if interval < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidInterval, interval)
	}
	if duration < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, duration)
	}

	e := &Engine{
		known:    make(map[*instrument.Handle]struct{}, len(instruments)),
		events:   events,
		drained:  events == nil,
		interval: interval,
		duration: duration,
		// first step lands on a boundary
		counter: interval - 1,
		logger:  slog.Default(),
	}
	for _, h := range instruments {
		e.activate(h)
	}
	for _, opt := range opts {
		opt.apply(e)
	}
	return e, nil
}

func (e *Engine) activate(h *instrument.Handle) {
	if _, ok := e.known[h]; ok {
		return
	}
	e.known[h] = struct{}{}
	e.active = append(e.active, h)
}

// Position returns the grid index of the current tick, or -1 before the
// first step.
func (e *Engine) Position() int { return e.index - 1 }

// Instruments returns the active set in activation order.
func (e *Engine) Instruments() []*instrument.Handle {
	out := make([]*instrument.Handle, len(e.active))
	copy(out, e.active)
	return out
}

// Next advances one frame. It returns io.EOF when the duration is covered.
//
// A Once source error is returned together with a populated Tick holding
// the other instruments' frames, and the run continues. Any other failure
// is an *Error and ends the run.
func (e *Engine) Next() (Tick, error) {
	if e.err != nil {
		return Tick{}, e.err
	}

	if e.counter >= e.interval-1 {
		if e.index*e.interval >= e.duration {
			e.err = io.EOF
			return Tick{}, io.EOF
		}
		if err := e.drain(); err != nil {
			e.err = err
			return Tick{}, err
		}
		e.counter = 0
		e.index++
	} else {
		e.counter++
	}

	return e.sample()
}

// drain dispatches every event scheduled at the current index.
func (e *Engine) drain() error {
	for {
		if e.hasPending {
			if e.pending.Position != e.index {
				return nil
			}
			e.hasPending = false
			if err := e.dispatch(e.pending); err != nil {
				return err
			}
			continue
		}
		if e.drained {
			return nil
		}

		p, err := e.events.Next()
		if errors.Is(err, io.EOF) {
			e.drained = true
			return nil
		}
		if err != nil {
			return &Error{Kind: KindStream, Position: e.index, Err: err}
		}
		if p.Position < e.index {
			return &Error{
				Kind:     KindStream,
				Position: e.index,
				Err:      fmt.Errorf("%w: event at %d", ErrOutOfOrder, p.Position),
			}
		}
		e.pending, e.hasPending = p, true
	}
}

func (e *Engine) dispatch(p Pair) error {
	h := p.Event.Handle
	if h == nil {
		return &Error{Kind: KindDispatch, Position: e.index, Err: ErrNilHandle}
	}

	e.logger.Debug("dispatch", "tick", e.index, "instrument", h.String(), "event", p.Event.Value)

	if err := h.Transform(p.Event.Value); err != nil {
		return &Error{Kind: KindDispatch, Position: e.index, Instrument: h.String(), Err: err}
	}
	e.activate(h)
	return nil
}

func (e *Engine) sample() (Tick, error) {
	tick := Tick{Position: e.index - 1, Frame: e.counter}

	var once []error
	for _, h := range e.active {
		s, ok, err := h.NextSample()
		switch {
		case err == nil:
		case instrument.IsOnce(err):
			once = append(once, fmt.Errorf("%s: %w", h, err))
			continue
		default:
			e.err = &Error{Kind: KindSource, Position: tick.Position, Instrument: h.String(), Err: err}
			return Tick{}, e.err
		}

		if ok {
			tick.Samples = append(tick.Samples, s)
			tick.Sources = append(tick.Sources, h)
		}
	}

	return tick, errors.Join(once...)
}

// All iterates the remaining steps. Once errors are yielded with their tick
// and iteration goes on; the sequence ends after a run-ending error or at
// the end of the duration.
func (e *Engine) All() iter.Seq2[Tick, error] {
	return func(yield func(Tick, error) bool) {
		for {
			tick, err := e.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(tick, err) {
				return
			}
			if err != nil && e.err != nil {
				return
			}
		}
	}
}
