// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"testing"
)

func TestMonoMixer_MonoPassthrough(t *testing.T) {
	t.Parallel()

	src := newS16Source(100, 500)
	mixer := NewMonoMixer(src)

	if mixer.Channels() != 1 {
		t.Errorf("MonoMixer.Channels() = %d, want 1", mixer.Channels())
	}

	buf := make([]Sample, 10)
	n, err := mixer.ReadFrames(buf)
	if err != nil {
		t.Fatalf("ReadFrames() error = %v", err)
	}
	if n != 10 {
		t.Errorf("ReadFrames() n = %d, want 10", n)
	}
	for i := range n {
		if !buf[i].Equal(S16(500)) {
			t.Errorf("buf[%d] = %v, want s16[500]", i, buf[i])
		}
	}
}

func TestMonoMixer_StereoToMono(t *testing.T) {
	t.Parallel()

	src := newS16Source(100, 400, 600)
	mixer := NewMonoMixer(src)

	buf := make([]Sample, 10)
	n, err := mixer.ReadFrames(buf)
	if err != nil {
		t.Fatalf("ReadFrames() error = %v", err)
	}
	for i := range n {
		if !buf[i].Equal(S16(500)) {
			t.Errorf("buf[%d] = %v, want s16[500]", i, buf[i])
		}
	}
}

func TestDownmix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Sample
		want Sample
	}{
		{"u8", U8(100, 200), U8(150)},
		{"u32 no overflow", U32(1<<32-1, 1<<32-1), U32(1<<32 - 1)},
		{"s8 no overflow", S8(-128, -128), S8(-128)},
		{"s24", S24(-300, 100, 200, 0), S24(0)},
		{"f32", F32(0.25, 0.75), F32(0.5)},
		{"f64", F64(-1, 1), F64(0)},
		{"mono untouched", S16(7), S16(7)},
		{"empty untouched", Empty(), Empty()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Downmix(tt.in); !got.Equal(tt.want) {
				t.Errorf("Downmix(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMonoMixer_EOF(t *testing.T) {
	t.Parallel()

	src := newS16Source(5, 0, 0)
	mixer := NewMonoMixer(src)

	buf := make([]Sample, 10)
	n, err := mixer.ReadFrames(buf)
	if err != io.EOF {
		t.Errorf("ReadFrames() error = %v, want io.EOF", err)
	}
	if n != 5 {
		t.Errorf("ReadFrames() n = %d, want 5", n)
	}

	n, err = mixer.ReadFrames(buf)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadFrames() after EOF = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestMonoMixer_EmptyBuffer(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(newS16Source(5, 1, 1))
	n, err := mixer.ReadFrames(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadFrames(nil) = %d, %v; want 0, nil", n, err)
	}
}

func TestMonoMixer_PreservesMetadata(t *testing.T) {
	t.Parallel()

	src := newS16Source(5, 1, 1)
	mixer := NewMonoMixer(src)

	if mixer.SampleRate() != src.SampleRate() {
		t.Errorf("SampleRate() = %d, want %d", mixer.SampleRate(), src.SampleRate())
	}
	if mixer.Encoding() != EncodingS16 {
		t.Errorf("Encoding() = %v, want s16", mixer.Encoding())
	}
	if err := mixer.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !src.closed {
		t.Error("Close() did not close the underlying source")
	}
}

func BenchmarkMonoMixer_StereoToMono(b *testing.B) {
	buf := make([]Sample, 512)

	b.ReportAllocs()

	for b.Loop() {
		mixer := NewMonoMixer(newS16Source(512, 100, -100))
		_, _ = mixer.ReadFrames(buf)
	}
}
