// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// mockSource is a test helper that generates frames for testing.
// waveform returns the frame for a given index.
type mockSource struct {
	sampleRate  int
	channels    int
	enc         Encoding
	totalFrames int
	generated   int
	closed      bool
	waveform    func(frame int) Sample
}

func newMockSource(channels, totalFrames int, enc Encoding, waveform func(frame int) Sample) *mockSource {
	return &mockSource{
		sampleRate:  8000,
		channels:    channels,
		enc:         enc,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// newS16Source creates a source whose channel c carries values[c] on every frame.
func newS16Source(totalFrames int, values ...int16) *mockSource {
	return newMockSource(len(values), totalFrames, EncodingS16, func(int) Sample {
		return S16(append([]int16(nil), values...)...)
	})
}

func (m *mockSource) SampleRate() int    { return m.sampleRate }
func (m *mockSource) Channels() int      { return m.channels }
func (m *mockSource) Encoding() Encoding { return m.enc }
func (m *mockSource) Close() error {
	m.closed = true
	return nil
}

func (m *mockSource) ReadFrames(dst []Sample) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	n := min(len(dst), m.totalFrames-m.generated)
	for i := range n {
		dst[i] = m.waveform(m.generated + i)
	}
	m.generated += n

	if m.generated >= m.totalFrames {
		return n, io.EOF
	}
	return n, nil
}
