// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"errors"
	"io"

	"github.com/ik5/audsched/audio"
)

// Mixer folds every Tick of an Engine into one signed 32-bit frame.
type Mixer struct {
	e   *Engine
	acc audio.Accumulator
}

// Mix wraps e.
func Mix(e *Engine) *Mixer {
	return &Mixer{e: e}
}

// Next returns the mixed frame for the next step. ok is false when no
// instrument produced a non-empty frame. The frame is reused by the following call.
//
// Once errors are returned along with the frame mixed from the other
// instruments. Run-ending errors and io.EOF come back with a nil frame.
func (m *Mixer) Next() (frame []int32, ok bool, err error) {
	tick, err := m.e.Next()
	if errors.Is(err, io.EOF) || m.e.err != nil {
		return nil, false, err
	}

	m.acc.Reset()
	for _, s := range tick.Samples {
		if addErr := m.acc.Add(s); addErr != nil {
			return nil, false, errors.Join(err, addErr)
		}
	}
	frame, ok = m.acc.Result()
	return frame, ok, err
}

// Engine returns the wrapped engine.
func (m *Mixer) Engine() *Engine { return m.e }
