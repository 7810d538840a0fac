// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes integer PCM WAV files on top of
// github.com/go-audio/wav.
//
// # Decoding
//
// Decoder yields frames in the file's native encoding: U8 for 8-bit data,
// S16, S24 or S32 otherwise. Float WAV files are rejected with
// ErrUnsupportedWavLayout.
//
//	src, err := wav.Decoder{}.Decode(file)
//	frames, err := audio.ReadAll(src, 1024)
//
// # Encoding
//
// Encoder writes frames of the signed 32-bit mixing domain produced by
// audio.Combine, quantized to 8, 16, 24 or 32 bits:
//
//	enc, err := wav.NewEncoder(file, 44100, 2, 16)
//	err = enc.WriteFrame([]int32{sumL, sumR})
//	err = enc.Close()
//
// WritePCM writes a whole file from already-quantized interleaved values and
// only needs an io.Writer. It is handy for fixtures.
package wav
