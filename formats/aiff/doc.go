// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding on top
// of github.com/go-audio/aiff.
//
// Frames are returned in the file's native signed encoding (S8, S16, S24 or
// S32), ready to be mixed by audio.Combine:
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if errors.Is(err, aiff.ErrNotAiffFile) {
//	    // not an AIFF stream
//	}
//	buf := make([]audio.Sample, 1024)
//	n, err := src.ReadFrames(buf)
//
// go-audio needs random access to the chunk layout, so a reader that cannot
// seek is buffered in memory first.
package aiff
