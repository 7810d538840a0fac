// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audsched/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	buf        []float32 // interleaved values; the first pending belong to an incomplete frame
	pending    int
	eof        bool
}

func (s *source) SampleRate() int          { return s.sampleRate }
func (s *source) Channels() int            { return s.channels }
func (s *source) Encoding() audio.Encoding { return audio.EncodingF32 }
func (s *source) Close() error             { return nil }

func (s *source) ReadFrames(dst []audio.Sample) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	// Read returns a count of interleaved values, not frames
	need := len(dst) * s.channels
	if cap(s.buf) < need {
		grown := make([]float32, need)
		copy(grown, s.buf[:s.pending])
		s.buf = grown
	}
	s.buf = s.buf[:need]

	n, err := s.dec.Read(s.buf[s.pending:])
	n += s.pending
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("decoding vorbis: %w", err)
	}
	if errors.Is(err, io.EOF) || n == 0 {
		s.eof = true
	}

	frames := n / s.channels
	vals := make([]float32, frames*s.channels)
	copy(vals, s.buf[:len(vals)])
	for f := range frames {
		dst[f] = audio.F32(vals[f*s.channels : (f+1)*s.channels : (f+1)*s.channels]...)
	}

	s.pending = copy(s.buf, s.buf[len(vals):n])

	if s.eof {
		return frames, io.EOF
	}
	return frames, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		buf:        make([]float32, 4096),
	}, nil
}
