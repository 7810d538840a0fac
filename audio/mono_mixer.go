// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer downmixes a multi-channel Source to one channel by averaging,
// keeping the source encoding.
type MonoMixer struct {
	src Source
	tmp []Sample
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]Sample, 256),
	}
}

func (m *MonoMixer) SampleRate() int    { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int      { return 1 }
func (m *MonoMixer) Encoding() Encoding { return m.src.Encoding() }
func (m *MonoMixer) Close() error {
	err := m.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *MonoMixer) ReadFrames(dst []Sample) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if m.src.Channels() == 1 {
		// Pass-through: read mono directly
		return m.src.ReadFrames(dst)
	}

	// Grow tmp buffer if needed (but don't shrink to avoid thrashing)
	if cap(m.tmp) < len(dst) {
		m.tmp = make([]Sample, len(dst))
	}
	m.tmp = m.tmp[:len(dst)]

	n, err := m.src.ReadFrames(m.tmp)
	for i := range n {
		dst[i] = Downmix(m.tmp[i])
	}

	return n, err
}

// Downmix averages every channel of s into a single-channel sample of the
// same encoding.
func Downmix(s Sample) Sample {
	n := s.Channels()
	if n <= 1 {
		return s
	}

	switch s.enc {
	case EncodingU8:
		return U8(uint8(avgUnsigned(s.U8())))
	case EncodingU16:
		return U16(uint16(avgUnsigned(s.U16())))
	case EncodingU24:
		return U24(uint32(avgUnsigned(s.U24())))
	case EncodingU32:
		return U32(uint32(avgUnsigned(s.U32())))
	case EncodingS8:
		return S8(int8(avgSigned(s.S8())))
	case EncodingS16:
		return S16(int16(avgSigned(s.S16())))
	case EncodingS24:
		return S24(int32(avgSigned(s.S24())))
	case EncodingS32:
		return S32(int32(avgSigned(s.S32())))
	case EncodingF32:
		var sum float32
		for _, c := range s.F32() {
			sum += c
		}
		return F32(sum / float32(n))
	case EncodingF64:
		var sum float64
		for _, c := range s.F64() {
			sum += c
		}
		return F64(sum / float64(n))
	default:
		return s
	}
}

func avgUnsigned[T uint8 | uint16 | uint32](cs []T) uint64 {
	var sum uint64
	for _, c := range cs {
		sum += uint64(c)
	}
	return sum / uint64(len(cs))
}

func avgSigned[T int8 | int16 | int32](cs []T) int64 {
	var sum int64
	for _, c := range cs {
		sum += int64(c)
	}
	return sum / int64(len(cs))
}
