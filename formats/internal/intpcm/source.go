// SPDX-License-Identifier: EPL-2.0

// Package intpcm adapts go-audio integer PCM decoders to audio.Source,
// keeping the native bit depth of the file.
package intpcm

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/audsched/audio"
)

// Reader is the subset of the go-audio wav and aiff decoders used by Source.
type Reader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// ErrUnsupportedBitDepth is returned by EncodingFor for depths other than
// 8, 16, 24 and 32.
var ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

// EncodingFor maps an integer PCM bit depth to a sample encoding. 8-bit data
// is unsigned in WAV and signed in AIFF, so the caller decides.
func EncodingFor(bitDepth int, unsigned8 bool) (audio.Encoding, error) {
	switch bitDepth {
	case 8:
		if unsigned8 {
			return audio.EncodingU8, nil
		}
		return audio.EncodingS8, nil
	case 16:
		return audio.EncodingS16, nil
	case 24:
		return audio.EncodingS24, nil
	case 32:
		return audio.EncodingS32, nil
	default:
		return audio.EncodingEmpty, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
}

// Source reads interleaved ints from a Reader and regroups them into frames.
// A trailing partial frame at the end of the stream is dropped.
type Source struct {
	dec        Reader
	sampleRate int
	channels   int
	enc        audio.Encoding
	buf        *goaudio.IntBuffer
	pending    []int
	eof        bool
}

func New(dec Reader, format *goaudio.Format, enc audio.Encoding) *Source {
	return &Source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		enc:        enc,
		buf:        &goaudio.IntBuffer{Format: format},
	}
}

func (s *Source) SampleRate() int          { return s.sampleRate }
func (s *Source) Channels() int            { return s.channels }
func (s *Source) Encoding() audio.Encoding { return s.enc }
func (s *Source) Close() error             { return nil }

func (s *Source) ReadFrames(dst []audio.Sample) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	ch := s.channels
	for len(s.pending) < len(dst)*ch && !s.eof {
		want := len(dst)*ch - len(s.pending)
		if cap(s.buf.Data) < want {
			s.buf.Data = make([]int, want)
		}
		s.buf.Data = s.buf.Data[:want]

		n, err := s.dec.PCMBuffer(s.buf)
		s.pending = append(s.pending, s.buf.Data[:n]...)
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("reading pcm: %w", err)
		}
		if n == 0 || err != nil {
			s.eof = true
		}
	}

	frames := min(len(dst), len(s.pending)/ch)
	vals := s.pending[:frames*ch]
	switch s.enc {
	case audio.EncodingU8:
		split(dst, vals, ch, audio.U8)
	case audio.EncodingS8:
		split(dst, vals, ch, audio.S8)
	case audio.EncodingS16:
		split(dst, vals, ch, audio.S16)
	case audio.EncodingS24:
		split(dst, vals, ch, audio.S24)
	default:
		split(dst, vals, ch, audio.S32)
	}
	s.pending = append(s.pending[:0], s.pending[frames*ch:]...)

	if s.eof && len(s.pending) < ch {
		return frames, io.EOF
	}
	return frames, nil
}

// split converts vals into frames of ch channels backed by one allocation.
func split[T uint8 | int8 | int16 | int32](dst []audio.Sample, vals []int, ch int, mk func(...T) audio.Sample) {
	backing := make([]T, len(vals))
	for i, v := range vals {
		backing[i] = T(v)
	}
	for f := 0; f*ch < len(backing); f++ {
		dst[f] = mk(backing[f*ch : (f+1)*ch : (f+1)*ch]...)
	}
}
