// SPDX-License-Identifier: EPL-2.0

// Package instrument defines the pluggable sound sources driven by the
// engine and the type-erased Handle that lets instruments of different
// concrete types live in one collection.
//
// # Instruments
//
// An Instrument[E] produces frames through NextSample and consumes control
// events of type E through Transform:
//
//	type Blip struct{ left int }
//
//	func (b *Blip) NextSample() (audio.Sample, bool, error) {
//	    if b.left == 0 {
//	        return audio.Empty(), false, nil
//	    }
//	    b.left--
//	    return audio.S16(1000), true, nil
//	}
//	func (b *Blip) Transform(n int) error { b.left = n; return nil }
//	func (b *Blip) Help() string            { return "blip: plays n frames" }
//
// # Handles
//
// New wraps an instrument in a *Handle. Handle.Transform accepts any value
// and decodes it into E first; values of the wrong shape fail with
// *DecodeError and leave the instrument untouched, while errors returned by
// Transform itself come back as *TransitionError:
//
//	h := instrument.New[int](&Blip{})
//	err := h.Transform(map[string]any{"oops": 1}) // *DecodeError
//	err = h.Transform(3)                          // ok
//
// Source failures are *SourceError values of kind Once (retry next tick) or
// Fatal (permanently broken). Every Handle operation takes the handle's
// mutex for its own duration, so a handle may be shared across goroutines.
// A panic inside an instrument poisons the handle and later calls return
// ErrPoisoned.
//
// As and With give checked access to the concrete instrument using the
// type tag carried by the handle.
//
// # Factories
//
// Define turns a constructor keyed by route into a Factory, and a Catalog
// indexes factories by name:
//
//	catalog := instrument.NewCatalog(sampler.Factory(), tone.Factory())
//	h, err := catalog.Initialize("sampler", "import", "kick.wav")
package instrument
