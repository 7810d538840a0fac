// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"math"
	"testing"
)

func TestSample_Channels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		sample Sample
		enc    Encoding
		want   int
	}{
		{"empty", Empty(), EncodingEmpty, 0},
		{"zero value", Sample{}, EncodingEmpty, 0},
		{"u8 mono", U8(1), EncodingU8, 1},
		{"u24 stereo", U24(1, 2), EncodingU24, 2},
		{"s16 stereo", S16(1, 2), EncodingS16, 2},
		{"f64 quad", F64(0, 0, 0, 0), EncodingF64, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.sample.Channels(); got != tt.want {
				t.Errorf("Channels() = %d, want %d", got, tt.want)
			}
			if got := tt.sample.Encoding(); got != tt.enc {
				t.Errorf("Encoding() = %v, want %v", got, tt.enc)
			}
		})
	}
}

func TestSample_AccessorsMatchEncoding(t *testing.T) {
	t.Parallel()

	s := S16(5, 6)
	if s.S16() == nil {
		t.Fatal("S16() = nil for an s16 sample")
	}
	if s.S32() != nil || s.U16() != nil || s.F32() != nil {
		t.Error("accessor for another encoding returned data")
	}
	if U24(3).U32() != nil {
		t.Error("U32() returned data for a u24 sample")
	}
}

func TestSample_Silence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		enc  Encoding
		want Sample
	}{
		{EncodingU8, U8(128, 128)},
		{EncodingU16, U16(1<<15, 1<<15)},
		{EncodingS24, S24(0, 0)},
		{EncodingF32, F32(0, 0)},
		{EncodingEmpty, Empty()},
	}

	for _, tt := range tests {
		t.Run(tt.enc.String(), func(t *testing.T) {
			t.Parallel()

			if got := Silence(tt.enc, 2); !got.Equal(tt.want) {
				t.Errorf("Silence(%v, 2) = %v, want %v", tt.enc, got, tt.want)
			}
		})
	}
}

func TestSample_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	data := []int16{1, 2}
	s := S16(data...)
	c := s.Clone()
	data[0] = 99

	if !c.Equal(S16(1, 2)) {
		t.Errorf("Clone() = %v, want s16[1 2]", c)
	}
}

func TestSample_Equal(t *testing.T) {
	t.Parallel()

	nan := float32(math.NaN())
	tests := []struct {
		name string
		a, b Sample
		want bool
	}{
		{"same", S16(1, 2), S16(1, 2), true},
		{"different values", S16(1, 2), S16(2, 1), false},
		{"different encodings", S16(1), S32(1), false},
		{"u24 vs u32", U24(1), U32(1), false},
		{"nan by bits", F32(nan), F32(nan), true},
		{"empty", Empty(), Empty(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEncoding_BitDepth(t *testing.T) {
	t.Parallel()

	tests := map[Encoding]int{
		EncodingEmpty: 0,
		EncodingU8:    8,
		EncodingS16:   16,
		EncodingU24:   24,
		EncodingS32:   32,
		EncodingF32:   32,
		EncodingF64:   64,
	}
	for enc, want := range tests {
		if got := enc.BitDepth(); got != want {
			t.Errorf("%v.BitDepth() = %d, want %d", enc, got, want)
		}
	}
}
