// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"math"

	"github.com/ik5/audsched/utils"
)

// Full-scale ratios used to lift narrower encodings into the int32 domain.
// 24-bit values use a 3x8-bit range constant.
const (
	ratio8  = math.MaxUint32 / math.MaxUint8
	ratio16 = math.MaxUint32 / math.MaxUint16
	ratio24 = math.MaxUint32 / (3 * math.MaxUint8)
)

// Unsigned values are recentered so that zero lands on MinInt32.
func liftUnsigned(c uint32, ratio int64) int32 {
	return utils.ClampInt32(math.MinInt32 + int64(c)*ratio)
}

func liftSigned(c int32, ratio int64) int32 {
	return utils.ClampInt32(int64(c) * ratio)
}

// liftF32 maps a float32 through its bit pattern.
func liftF32(c float32) int32 {
	return int32(math.Float32bits(c))
}

// liftF64 packs the odd bits of the float64 pattern into 32 bits and
// offsets them from MinInt32.
func liftF64(c float64) int32 {
	bits := math.Float64bits(c)
	var packed uint32
	for i := range 32 {
		packed |= uint32((bits>>(2*i+1))&1) << i
	}
	return int32(int64(math.MinInt32) + int64(packed))
}

// lift writes the int32-domain value of every channel of s into dst, which
// must have room for s.Channels() values.
func lift(s Sample, dst []int32) {
	switch s.enc {
	case EncodingU8:
		for i, c := range s.U8() {
			dst[i] = liftUnsigned(uint32(c), ratio8)
		}
	case EncodingU16:
		for i, c := range s.U16() {
			dst[i] = liftUnsigned(uint32(c), ratio16)
		}
	case EncodingU24:
		for i, c := range s.U24() {
			dst[i] = liftUnsigned(c, ratio24)
		}
	case EncodingU32:
		for i, c := range s.U32() {
			dst[i] = liftUnsigned(c, 1)
		}
	case EncodingS8:
		for i, c := range s.S8() {
			dst[i] = liftSigned(int32(c), ratio8)
		}
	case EncodingS16:
		for i, c := range s.S16() {
			dst[i] = liftSigned(int32(c), ratio16)
		}
	case EncodingS24:
		for i, c := range s.S24() {
			dst[i] = liftSigned(c, ratio24)
		}
	case EncodingS32:
		copy(dst, s.S32())
	case EncodingF32:
		for i, c := range s.F32() {
			dst[i] = liftF32(c)
		}
	case EncodingF64:
		for i, c := range s.F64() {
			dst[i] = liftF64(c)
		}
	}
}

// Lift returns the int32-domain value of every channel of s. Empty samples
// lift to nil.
func Lift(s Sample) []int32 {
	if s.IsEmpty() {
		return nil
	}
	out := make([]int32, s.Channels())
	lift(s, out)
	return out
}

// Accumulator sums samples of any encoding into one signed 32-bit value per
// channel using saturating addition. The first non-empty sample fixes the
// channel count; the zero value is ready to use.
type Accumulator struct {
	sum     []int32
	scratch []int32
	started bool
}

// Add lifts s and adds it to the running sum. Empty samples are ignored. A
// channel-count mismatch returns ErrChannelInconsistency and leaves the
// accumulator untouched.
func (a *Accumulator) Add(s Sample) error {
	if s.IsEmpty() {
		return nil
	}

	n := s.Channels()
	if a.started && n != len(a.sum) {
		return fmt.Errorf("%w: have %d channels, got %d", ErrChannelInconsistency, len(a.sum), n)
	}

	if cap(a.scratch) < n {
		a.scratch = make([]int32, n)
	}
	a.scratch = a.scratch[:n]
	lift(s, a.scratch)

	if !a.started {
		a.sum = append(a.sum[:0], a.scratch...)
		a.started = true
		return nil
	}
	for i, v := range a.scratch {
		a.sum[i] = utils.SaturatingAdd32(a.sum[i], v)
	}
	return nil
}

// Result returns the accumulated channels. ok is false when nothing but
// empty samples (or nothing at all) was added, which is distinct from a
// silent sample. The slice is reused by the next Add after Reset.
func (a *Accumulator) Result() (sum []int32, ok bool) {
	if !a.started {
		return nil, false
	}
	return a.sum, true
}

// Reset clears the accumulator while keeping its buffers.
func (a *Accumulator) Reset() {
	a.sum = a.sum[:0]
	a.started = false
}

// Combine folds same-position samples of possibly differing encodings into a
// single int32 accumulator. ok is false when no sample contributed.
func Combine(samples ...Sample) (sum []int32, ok bool, err error) {
	var acc Accumulator
	for _, s := range samples {
		if err := acc.Add(s); err != nil {
			return nil, false, err
		}
	}
	sum, ok = acc.Result()
	return sum, ok, nil
}
