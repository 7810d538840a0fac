// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"
	"slices"
)

// Encoding identifies the wire representation of the channel values held in
// a Sample.
type Encoding uint8

const (
	EncodingEmpty Encoding = iota
	EncodingU8
	EncodingU16
	EncodingU24
	EncodingU32
	EncodingS8
	EncodingS16
	EncodingS24
	EncodingS32
	EncodingF32
	EncodingF64
)

var encodingNames = [...]string{
	EncodingEmpty: "empty",
	EncodingU8:    "u8",
	EncodingU16:   "u16",
	EncodingU24:   "u24",
	EncodingU32:   "u32",
	EncodingS8:    "s8",
	EncodingS16:   "s16",
	EncodingS24:   "s24",
	EncodingS32:   "s32",
	EncodingF32:   "f32",
	EncodingF64:   "f64",
}

func (e Encoding) String() string {
	if int(e) < len(encodingNames) {
		return encodingNames[e]
	}
	return fmt.Sprintf("encoding(%d)", uint8(e))
}

// BitDepth returns the number of significant bits per channel value, or 0
// for EncodingEmpty.
func (e Encoding) BitDepth() int {
	switch e {
	case EncodingU8, EncodingS8:
		return 8
	case EncodingU16, EncodingS16:
		return 16
	case EncodingU24, EncodingS24:
		return 24
	case EncodingU32, EncodingS32, EncodingF32:
		return 32
	case EncodingF64:
		return 64
	default:
		return 0
	}
}

// Signed reports whether the encoding is a signed integer or float encoding.
func (e Encoding) Signed() bool {
	return e >= EncodingS8
}

// Sample is one frame of PCM data across one or more channels. Every channel
// value of a Sample shares a single Encoding. The zero value is an empty
// sample, which marks a frame where a source produced nothing.
//
// U24 values are carried in uint32 and S24 values in int32; only the low 24
// bits are meaningful.
type Sample struct {
	enc  Encoding
	data any
}

// Empty returns the silence/no-op marker.
func Empty() Sample { return Sample{} }

func U8(ch ...uint8) Sample    { return Sample{enc: EncodingU8, data: ch} }
func U16(ch ...uint16) Sample  { return Sample{enc: EncodingU16, data: ch} }
func U24(ch ...uint32) Sample  { return Sample{enc: EncodingU24, data: ch} }
func U32(ch ...uint32) Sample  { return Sample{enc: EncodingU32, data: ch} }
func S8(ch ...int8) Sample     { return Sample{enc: EncodingS8, data: ch} }
func S16(ch ...int16) Sample   { return Sample{enc: EncodingS16, data: ch} }
func S24(ch ...int32) Sample   { return Sample{enc: EncodingS24, data: ch} }
func S32(ch ...int32) Sample   { return Sample{enc: EncodingS32, data: ch} }
func F32(ch ...float32) Sample { return Sample{enc: EncodingF32, data: ch} }
func F64(ch ...float64) Sample { return Sample{enc: EncodingF64, data: ch} }

// Silence returns a zero-amplitude sample of the given encoding and channel
// count. Unsigned encodings use their midpoint.
func Silence(enc Encoding, channels int) Sample {
	switch enc {
	case EncodingU8:
		return U8(fill(channels, uint8(1<<7))...)
	case EncodingU16:
		return U16(fill(channels, uint16(1<<15))...)
	case EncodingU24:
		return U24(fill(channels, uint32(1<<23))...)
	case EncodingU32:
		return U32(fill(channels, uint32(1<<31))...)
	case EncodingS8:
		return S8(make([]int8, channels)...)
	case EncodingS16:
		return S16(make([]int16, channels)...)
	case EncodingS24:
		return S24(make([]int32, channels)...)
	case EncodingS32:
		return S32(make([]int32, channels)...)
	case EncodingF32:
		return F32(make([]float32, channels)...)
	case EncodingF64:
		return F64(make([]float64, channels)...)
	default:
		return Empty()
	}
}

func fill[T any](n int, v T) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Encoding returns the encoding of s.
func (s Sample) Encoding() Encoding { return s.enc }

// IsEmpty reports whether s is the empty marker.
func (s Sample) IsEmpty() bool { return s.enc == EncodingEmpty }

// Channels returns the number of channels held by s. Empty samples have none.
func (s Sample) Channels() int {
	switch v := s.data.(type) {
	case []uint8:
		return len(v)
	case []uint16:
		return len(v)
	case []uint32:
		return len(v)
	case []int8:
		return len(v)
	case []int16:
		return len(v)
	case []int32:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	default:
		return 0
	}
}

// Typed accessors. Each returns nil when s does not hold that encoding.

func (s Sample) U8() []uint8 {
	if s.enc != EncodingU8 {
		return nil
	}
	return s.data.([]uint8)
}

func (s Sample) U16() []uint16 {
	if s.enc != EncodingU16 {
		return nil
	}
	return s.data.([]uint16)
}

func (s Sample) U24() []uint32 {
	if s.enc != EncodingU24 {
		return nil
	}
	return s.data.([]uint32)
}

func (s Sample) U32() []uint32 {
	if s.enc != EncodingU32 {
		return nil
	}
	return s.data.([]uint32)
}

func (s Sample) S8() []int8 {
	if s.enc != EncodingS8 {
		return nil
	}
	return s.data.([]int8)
}

func (s Sample) S16() []int16 {
	if s.enc != EncodingS16 {
		return nil
	}
	return s.data.([]int16)
}

func (s Sample) S24() []int32 {
	if s.enc != EncodingS24 {
		return nil
	}
	return s.data.([]int32)
}

func (s Sample) S32() []int32 {
	if s.enc != EncodingS32 {
		return nil
	}
	return s.data.([]int32)
}

func (s Sample) F32() []float32 {
	if s.enc != EncodingF32 {
		return nil
	}
	return s.data.([]float32)
}

func (s Sample) F64() []float64 {
	if s.enc != EncodingF64 {
		return nil
	}
	return s.data.([]float64)
}

// Clone returns a deep copy of s so the caller may keep it past the next
// read of the producing source.
func (s Sample) Clone() Sample {
	switch v := s.data.(type) {
	case []uint8:
		return Sample{enc: s.enc, data: slices.Clone(v)}
	case []uint16:
		return Sample{enc: s.enc, data: slices.Clone(v)}
	case []uint32:
		return Sample{enc: s.enc, data: slices.Clone(v)}
	case []int8:
		return Sample{enc: s.enc, data: slices.Clone(v)}
	case []int16:
		return Sample{enc: s.enc, data: slices.Clone(v)}
	case []int32:
		return Sample{enc: s.enc, data: slices.Clone(v)}
	case []float32:
		return Sample{enc: s.enc, data: slices.Clone(v)}
	case []float64:
		return Sample{enc: s.enc, data: slices.Clone(v)}
	default:
		return Empty()
	}
}

// Equal reports whether s and o have the same encoding and identical channel
// values. Float channels are compared by bit pattern.
func (s Sample) Equal(o Sample) bool {
	if s.enc != o.enc {
		return false
	}
	switch v := s.data.(type) {
	case []uint8:
		return slices.Equal(v, o.data.([]uint8))
	case []uint16:
		return slices.Equal(v, o.data.([]uint16))
	case []uint32:
		return slices.Equal(v, o.data.([]uint32))
	case []int8:
		return slices.Equal(v, o.data.([]int8))
	case []int16:
		return slices.Equal(v, o.data.([]int16))
	case []int32:
		return slices.Equal(v, o.data.([]int32))
	case []float32:
		w := o.data.([]float32)
		return slices.EqualFunc(v, w, func(a, b float32) bool {
			return math.Float32bits(a) == math.Float32bits(b)
		})
	case []float64:
		w := o.data.([]float64)
		return slices.EqualFunc(v, w, func(a, b float64) bool {
			return math.Float64bits(a) == math.Float64bits(b)
		})
	default:
		return o.data == nil
	}
}

func (s Sample) String() string {
	if s.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("%s%v", s.enc, s.data)
}
