// SPDX-License-Identifier: EPL-2.0

// Package tone is a single-voice oscillator instrument driven by notes.
//
//	lead, err := catalog.Initialize("tone", "square", map[string]any{"amplitude": 0.3})
//	err = lead.Transform("A4")
package tone
