// SPDX-License-Identifier: EPL-2.0

package intpcm

import (
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audsched/audio"
)

// mockReader hands out at most chunk ints per call and reports io.EOF with
// the last batch.
type mockReader struct {
	data   []int
	offset int
	chunk  int
	err    error
}

func (m *mockReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.data) {
		return 0, nil
	}

	n := min(len(buf.Data), len(m.data)-m.offset)
	if m.chunk > 0 {
		n = min(n, m.chunk)
	}
	copy(buf.Data, m.data[m.offset:m.offset+n])
	m.offset += n

	if m.offset >= len(m.data) {
		return n, io.EOF
	}
	return n, nil
}

func newSource(r Reader, channels int, enc audio.Encoding) *Source {
	return New(r, &goaudio.Format{SampleRate: 8000, NumChannels: channels}, enc)
}

func TestEncodingFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		depth     int
		unsigned8 bool
		want      audio.Encoding
		wantErr   bool
	}{
		{8, true, audio.EncodingU8, false},
		{8, false, audio.EncodingS8, false},
		{16, true, audio.EncodingS16, false},
		{24, false, audio.EncodingS24, false},
		{32, false, audio.EncodingS32, false},
		{12, false, audio.EncodingEmpty, true},
	}

	for _, tt := range tests {
		got, err := EncodingFor(tt.depth, tt.unsigned8)
		if (err != nil) != tt.wantErr {
			t.Errorf("EncodingFor(%d) error = %v, wantErr %v", tt.depth, err, tt.wantErr)
		}
		if tt.wantErr && !errors.Is(err, ErrUnsupportedBitDepth) {
			t.Errorf("EncodingFor(%d) error = %v, want ErrUnsupportedBitDepth", tt.depth, err)
		}
		if got != tt.want {
			t.Errorf("EncodingFor(%d) = %v, want %v", tt.depth, got, tt.want)
		}
	}
}

func TestSource_ReadFrames(t *testing.T) {
	t.Parallel()

	src := newSource(&mockReader{data: []int{1, -1, 2, -2, 3, -3}}, 2, audio.EncodingS16)

	buf := make([]audio.Sample, 8)
	n, err := src.ReadFrames(buf)
	if err != io.EOF {
		t.Fatalf("ReadFrames() error = %v, want io.EOF", err)
	}
	if n != 3 {
		t.Fatalf("ReadFrames() n = %d, want 3", n)
	}

	want := []audio.Sample{audio.S16(1, -1), audio.S16(2, -2), audio.S16(3, -3)}
	for i := range want {
		if !buf[i].Equal(want[i]) {
			t.Errorf("frame %d = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestSource_FramesSpanReads(t *testing.T) {
	t.Parallel()

	// chunks of 3 values split stereo frames across PCMBuffer calls
	src := newSource(&mockReader{data: []int{10, 20, 30, 40, 50, 60}, chunk: 3}, 2, audio.EncodingS32)

	buf := make([]audio.Sample, 2)
	var got []audio.Sample
	for {
		n, err := src.ReadFrames(buf)
		for i := range n {
			got = append(got, buf[i])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadFrames() error = %v", err)
		}
	}

	want := []audio.Sample{audio.S32(10, 20), audio.S32(30, 40), audio.S32(50, 60)}
	if len(got) != len(want) {
		t.Fatalf("got %d frames, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("frame %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSource_DropsPartialTrailingFrame(t *testing.T) {
	t.Parallel()

	src := newSource(&mockReader{data: []int{1, 2, 3}}, 2, audio.EncodingS16)

	buf := make([]audio.Sample, 4)
	n, err := src.ReadFrames(buf)
	if n != 1 || err != io.EOF {
		t.Errorf("ReadFrames() = %d, %v; want 1, io.EOF", n, err)
	}
}

func TestSource_Unsigned8(t *testing.T) {
	t.Parallel()

	src := newSource(&mockReader{data: []int{0, 128, 255}}, 1, audio.EncodingU8)

	buf := make([]audio.Sample, 3)
	n, _ := src.ReadFrames(buf)
	if n != 3 {
		t.Fatalf("ReadFrames() n = %d, want 3", n)
	}
	if !buf[2].Equal(audio.U8(255)) {
		t.Errorf("frame 2 = %v, want u8[255]", buf[2])
	}
}

func TestSource_ReaderError(t *testing.T) {
	t.Parallel()

	src := newSource(&mockReader{err: io.ErrUnexpectedEOF}, 1, audio.EncodingS16)

	_, err := src.ReadFrames(make([]audio.Sample, 4))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadFrames() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestSource_EmptyBuffer(t *testing.T) {
	t.Parallel()

	src := newSource(&mockReader{data: []int{1}}, 1, audio.EncodingS16)
	if n, err := src.ReadFrames(nil); n != 0 || err != nil {
		t.Errorf("ReadFrames(nil) = %d, %v; want 0, nil", n, err)
	}
}

func BenchmarkSource_ReadFrames(b *testing.B) {
	data := make([]int, 4096)
	buf := make([]audio.Sample, 1024)

	b.ReportAllocs()

	for b.Loop() {
		src := newSource(&mockReader{data: data}, 2, audio.EncodingS16)
		for {
			if _, err := src.ReadFrames(buf); err != nil {
				break
			}
		}
	}
}
