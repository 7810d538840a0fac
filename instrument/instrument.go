// SPDX-License-Identifier: EPL-2.0

package instrument

import "github.com/ik5/audsched/audio"

// Source produces one frame per call. ok is false when the source has
// nothing to play right now; it may produce again after a later event.
// Errors should be *SourceError; any other error is treated as Fatal.
type Source interface {
	NextSample() (s audio.Sample, ok bool, err error)
}

// State consumes typed control events.
type State[E any] interface {
	Transform(event E) error
}

// Instrument pairs a Source with a State machine for events of type E.
type Instrument[E any] interface {
	Source
	State[E]
	Help() string
}
