// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis. Vorbis decodes to
// floating point, so frames are F32 samples with the channel count of the
// stream:
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	buf := make([]audio.Sample, 4096)
//	n, err := src.ReadFrames(buf)
//
// When mixed, F32 values enter the int32 domain through their bit pattern;
// see audio.Combine.
package vorbis
