// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// frames buffered before handing a block to the underlying encoder
const flushFrames = 1024

// Encoder streams frames in the signed 32-bit mixing domain to a WAV file,
// quantizing them to the requested bit depth.
type Encoder struct {
	enc      *gowav.Encoder
	buf      *goaudio.IntBuffer
	channels int
	bitDepth int
	frames   int
}

// NewEncoder prepares a PCM WAV encoder. The header is finalized by Close,
// which is why w must be seekable.
func NewEncoder(w io.WriteSeeker, sampleRate, channels, bitDepth int) (*Encoder, error) {
	if sampleRate < 1 || channels < 1 {
		return nil, ErrInvalidFormat
	}
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	format := &goaudio.Format{NumChannels: channels, SampleRate: sampleRate}
	return &Encoder{
		enc: gowav.NewEncoder(w, sampleRate, bitDepth, channels, formatPCM),
		buf: &goaudio.IntBuffer{
			Format:         format,
			Data:           make([]int, 0, flushFrames*channels),
			SourceBitDepth: bitDepth,
		},
		channels: channels,
		bitDepth: bitDepth,
	}, nil
}

func (e *Encoder) Channels() int { return e.channels }

// Frames returns the number of frames accepted so far.
func (e *Encoder) Frames() int { return e.frames }

// WriteFrame appends one frame. Its width must match the channel count.
func (e *Encoder) WriteFrame(frame []int32) error {
	if len(frame) != e.channels {
		return fmt.Errorf("%w: encoder has %d channels, frame has %d", ErrFrameWidth, e.channels, len(frame))
	}
	for _, v := range frame {
		e.buf.Data = append(e.buf.Data, Quantize(v, e.bitDepth))
	}
	e.frames++

	if len(e.buf.Data) >= flushFrames*e.channels {
		return e.flush()
	}
	return nil
}

func (e *Encoder) flush() error {
	if len(e.buf.Data) == 0 {
		return nil
	}
	if err := e.enc.Write(e.buf); err != nil {
		return fmt.Errorf("writing wav frames: %w", err)
	}
	e.buf.Data = e.buf.Data[:0]
	return nil
}

// Close flushes buffered frames and rewrites the header sizes.
func (e *Encoder) Close() error {
	if err := e.flush(); err != nil {
		return err
	}
	if err := e.enc.Close(); err != nil {
		return fmt.Errorf("closing wav encoder: %w", err)
	}
	return nil
}

// Quantize narrows a value of the signed 32-bit mixing domain to bitDepth.
// 8-bit output is unsigned, as WAV stores it.
func Quantize(v int32, bitDepth int) int {
	switch bitDepth {
	case 8:
		return int(v>>24) + 128
	case 16:
		return int(v >> 16)
	case 24:
		return int(v >> 8)
	default:
		return int(v)
	}
}
