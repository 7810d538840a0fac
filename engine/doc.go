// SPDX-License-Identifier: EPL-2.0

// Package engine schedules events onto a fixed frame grid and pulls frames
// from the instruments they drive.
//
// The grid is made of ticks of interval frames. An event at position p is
// delivered right before frame p*interval is pulled, so timing never
// depends on how long an instrument takes to produce:
//
//	kick, _ := catalog.Initialize("sampler", "open", map[string]any{"path": "kick.wav"})
//	events := engine.Events(
//	    engine.Pair{Position: 4, Event: instrument.Event{Handle: kick, Value: "play"}},
//	)
//	e, _ := engine.New(nil, events, 512, 44100)
//	for tick, err := range e.All() {
//	    // tick.Samples holds one frame per producing instrument
//	}
//
// Several ascending tracks are combined with Merge. Mix folds every tick
// into a single int32 frame.
//
// # Errors
//
// A Once source error is reported with the tick it happened on and the run
// continues. Fatal source errors, poisoned instruments, events that fail to
// decode or apply, and broken or unordered event streams end the run with an
// *Error that every later Next returns again.
package engine
