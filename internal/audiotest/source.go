// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides deterministic frame sources and scripted
// instruments for tests.
package audiotest

import (
	"bytes"
	"io"
	"math"

	"github.com/ik5/audsched/audio"
)

// MockSource generates F32 frames from a waveform function. It implements
// audio.Source.
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	closed      bool
	waveform    func(frame, channel int) float32
}

// NewMockSource creates a source of totalFrames frames whose channel values
// come from waveform.
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source that generates silence.
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewConstantSource(sampleRate, channels, totalFrames, 0)
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int          { return m.sampleRate }
func (m *MockSource) Channels() int            { return m.channels }
func (m *MockSource) Encoding() audio.Encoding { return audio.EncodingF32 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds the source to its first frame.
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadFrames(dst []audio.Sample) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	n := min(len(dst), m.totalFrames-m.generated)
	for i := range n {
		vals := make([]float32, m.channels)
		for ch := range vals {
			vals[ch] = m.waveform(m.generated+i, ch)
		}
		dst[i] = audio.F32(vals...)
	}
	m.generated += n

	if m.generated >= m.totalFrames {
		return n, io.EOF
	}
	return n, nil
}

// Decoder is an audio.Decoder that ignores its input and returns the source
// built by New, or Err.
type Decoder struct {
	New func() audio.Source
	Err error
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	if d.Err != nil {
		return nil, d.Err
	}
	_, _ = io.Copy(io.Discard, r)
	return d.New(), nil
}

// Bytes is a convenience io.Reader for decoders that ignore their input.
func Bytes(s string) io.Reader { return bytes.NewReader([]byte(s)) }
