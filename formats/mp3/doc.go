// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3, which always decodes to
// 16-bit stereo. Frames are therefore S16 samples with two channels,
// whatever the channel layout of the file:
//
//	src, err := mp3.Decoder{}.Decode(file)
//	buf := make([]audio.Sample, 1152)
//	n, err := src.ReadFrames(buf)
//
// Wrap the source in audio.NewMonoMixer for a single channel.
package mp3
