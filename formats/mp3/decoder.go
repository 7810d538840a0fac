// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audsched/audio"
)

// go-mp3 always produces 16-bit little-endian stereo.
const (
	channels   = 2
	frameBytes = channels * 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	pending    int // bytes of an incomplete frame kept at the head of buf
	eof        bool
}

func (s *source) SampleRate() int          { return s.sampleRate }
func (s *source) Channels() int            { return channels }
func (s *source) Encoding() audio.Encoding { return audio.EncodingS16 }
func (s *source) Close() error             { return nil }

func (s *source) ReadFrames(dst []audio.Sample) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	bytesNeeded := len(dst) * frameBytes
	if cap(s.buf) < bytesNeeded {
		grown := make([]byte, bytesNeeded)
		copy(grown, s.buf[:s.pending])
		s.buf = grown
	}
	s.buf = s.buf[:bytesNeeded]

	n, err := s.dec.Read(s.buf[s.pending:])
	n += s.pending
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("decoding mp3: %w", err)
	}
	if errors.Is(err, io.EOF) || n == 0 {
		s.eof = true
	}

	frames := n / frameBytes
	pcm := make([]int16, frames*channels)
	for i := range pcm {
		pcm[i] = int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
	}
	for f := range frames {
		dst[f] = audio.S16(pcm[f*channels : (f+1)*channels : (f+1)*channels]...)
	}

	s.pending = copy(s.buf, s.buf[frames*frameBytes:n])

	if s.eof {
		return frames, io.EOF
	}
	return frames, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
