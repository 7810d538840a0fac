// SPDX-License-Identifier: EPL-2.0

// Package audsched schedules events for heterogeneous instruments on a
// sample-accurate grid and renders the mixed result.
//
// # Building Blocks
//
//   - audio: the Sample frame type, its encodings and the mixing algebra
//   - instrument: the Instrument contract, shared Handles and Factories
//   - engine: the tick scheduler and its Mixer
//   - merge: interleaving of several ascending event tracks
//   - pattern: pattern strings and note names to grid positions
//   - instruments/sampler, instruments/tone: ready-made instruments
//   - project: YAML project files wiring all of the above
//
// # Quick Start
//
//	catalog := instrument.NewCatalog(sampler.Factory(), tone.Factory())
//	kick, _ := catalog.Initialize("sampler", "import", "kick.wav")
//
//	p := pattern.New()
//	_ = p.Extend(pattern.BindMap(map[string]any{"x": "play"}))
//	items, _ := p.Parse("x...x...")
//
//	pairs := make([]engine.Pair, len(items))
//	for i, it := range items {
//	    pairs[i] = engine.Pair{Position: it.Offset, Event: instrument.Event{Handle: kick, Value: it.Event}}
//	}
//
//	e, _ := engine.New(nil, engine.Events(pairs...), 11025, 88200)
//	out, _ := os.Create("beat.wav")
//	res, err := audsched.RenderWAV(ctx, e, out, 44100, audsched.WithBitDepth(16))
//
// Render does the same into any Sink; Buffer keeps frames in memory.
// project.Pairs shortens the loop above, and cmd/audsched renders project
// files from the command line.
//
// # Output
//
// Frames are mixed in the signed 32-bit domain with saturating addition.
// The output width is learned from the first frame any instrument
// produces; steps where nothing plays become silence of that width.
// Result.Digest fingerprints the produced frames so two renders of the same
// project can be compared.
package audsched
