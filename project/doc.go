// SPDX-License-Identifier: EPL-2.0

// Package project loads a YAML description of a render and turns it into
// instruments, positioned events and an engine.
//
//	sample_rate: 44100
//	interval: 11025
//	duration: 441000
//	bit_depth: 32
//	instruments:
//	  drums: {type: sampler, route: import, args: kick.wav}
//	  lead:  {type: tone, route: sine, args: {amplitude: 0.3}}
//	tracks:
//	  - instrument: drums
//	    bindings: [{trigger: "x", events: [play]}, {trigger: ".", events: [stop]}]
//	    pattern: "x...x...x..."
//	  - instrument: lead
//	    notes: "C4 E4 G4 C5"
//	    loop: 3
//
// Instruments are constructed in name order, which is also the order their
// frames are combined in. Each rune of a pattern is one grid position, and
// each note of a notes track takes one position.
//
//	f, err := project.Load("song.yaml")
//	p, err := f.Build(project.NewCatalog(f.Dir(), nil))
//	defer p.Close()
//	e, err := p.Engine()
package project
