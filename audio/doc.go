// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM frame model shared by every instrument and
// the algebra used to mix frames of differing encodings.
//
// # Samples
//
// A Sample is one frame across one or more channels, in one of a fixed
// family of encodings: unsigned and signed 8/16/24/32-bit integers, 32 and
// 64-bit floats, or Empty. Empty marks a frame where a producer had nothing
// to contribute:
//
//	s := audio.S16(1200, -1200) // stereo, 16-bit signed
//	s.Channels()                // 2
//	audio.Empty().IsEmpty()      // true
//
// # Combining
//
// Combine lifts every sample into the signed 32-bit domain and sums them
// element-wise with saturating addition:
//
//	sum, ok, err := audio.Combine(audio.S16(100, 100), audio.F32(0.5, 0.5))
//
// ok is false when nothing but empty samples were given, which is distinct
// from a silent sample. Samples with different channel counts fail with
// ErrChannelInconsistency.
//
// Lifting rules:
//   - unsigned values are recentered so zero maps to MinInt32
//   - narrower integers are scaled by the ratio of full-scale ranges
//     (24-bit values use a 3x8-bit range constant) and clamped
//   - floats are mapped through their bit pattern
//
// # Frame Sources
//
// Decoders in the formats packages return a Source that yields frames in
// the encoding native to the file:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.ForPath("kick.wav")
//	src, _ := decoder.Decode(file)
//	frames, _ := audio.ReadAll(src, 1024)
//
// MonoMixer downmixes any Source to one channel, keeping its encoding.
//
// # Error Handling
//
// Sources return io.EOF when no more frames are available:
//
//	for {
//	    n, err := src.ReadFrames(buf)
//	    // use buf[:n]
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
