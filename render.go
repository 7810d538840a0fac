// SPDX-License-Identifier: EPL-2.0

package audsched

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/ik5/audsched/audio"
	"github.com/ik5/audsched/engine"
	"github.com/ik5/audsched/formats/wav"
	"github.com/ik5/audsched/instrument"
)

// Sink receives mixed frames. Start is called once, before the first
// frame, with the channel count every frame will have.
type Sink interface {
	Start(channels int) error
	WriteFrame(frame []int32) error
}

// Result summarizes a render.
type Result struct {
	Frames   int
	Channels int
	// Leading counts the frames before any instrument produced, written
	// as silence.
	Leading int
	// OnceErrors counts recoverable source errors that were skipped.
	OnceErrors int
	// Digest is the xxhash of every frame written to the sink, silence
	// included, little-endian. Equal inputs render to equal digests.
	Digest uint64
}

// Render mixes every step of e into sink until the engine's duration is
// covered, ctx is done or an error ends the run.
//
// The channel count comes from the first produced frame unless
// WithChannels is given. Steps where nothing plays are written as silence
// of that width, including those before the first produced frame.
func Render(ctx context.Context, e *engine.Engine, sink Sink, opts ...Option) (Result, error) {
	cfg := newConfig(opts)

	var (
		res     Result
		mx      = engine.Mix(e)
		digest  = xxhash.New()
		scratch []byte
		silence []int32
	)

	// every written frame is hashed, silence included
	write := func(frame []int32) error {
		scratch = scratch[:0]
		for _, v := range frame {
			scratch = binary.LittleEndian.AppendUint32(scratch, uint32(v))
		}
		_, _ = digest.Write(scratch)

		if err := sink.WriteFrame(frame); err != nil {
			return fmt.Errorf("writing frame %d: %w", res.Frames, err)
		}
		res.Frames++
		return nil
	}

	start := func(channels int) error {
		if channels < 1 {
			return fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
		}
		if err := sink.Start(channels); err != nil {
			return fmt.Errorf("starting sink: %w", err)
		}
		res.Channels = channels
		silence = make([]int32, channels)
		for range res.Leading {
			if err := write(silence); err != nil {
				return err
			}
		}
		return nil
	}

	if cfg.channels != 0 {
		if err := start(cfg.channels); err != nil {
			return res, err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		frame, ok, err := mx.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if errors.Is(err, audio.ErrChannelInconsistency) || !instrument.IsOnce(err) || cfg.strict {
				return res, err
			}
			res.OnceErrors++
			cfg.logger.Warn("skipping source error", "tick", e.Position(), "error", err)
		}

		if !ok {
			if res.Channels == 0 {
				res.Leading++
				continue
			}
			frame = silence
		} else {
			if res.Channels == 0 {
				if err := start(len(frame)); err != nil {
					return res, err
				}
			}
			if len(frame) != res.Channels {
				return res, fmt.Errorf("%w at tick %d: rendering %d channels, got %d",
					audio.ErrChannelInconsistency, e.Position(), res.Channels, len(frame))
			}
		}

		if err := write(frame); err != nil {
			return res, err
		}
	}

	if res.Channels == 0 {
		return res, ErrSilentRender
	}

	res.Digest = digest.Sum64()
	cfg.logger.Info("render finished",
		"frames", res.Frames,
		"channels", res.Channels,
		"leading", res.Leading,
		"once_errors", res.OnceErrors,
		"digest", fmt.Sprintf("%016x", res.Digest),
	)
	return res, nil
}

type wavSink struct {
	w          io.WriteSeeker
	sampleRate int
	bitDepth   int
	enc        *wav.Encoder
}

func (s *wavSink) Start(channels int) error {
	enc, err := wav.NewEncoder(s.w, s.sampleRate, channels, s.bitDepth)
	if err != nil {
		return err
	}
	s.enc = enc
	return nil
}

func (s *wavSink) WriteFrame(frame []int32) error {
	return s.enc.WriteFrame(frame)
}

// RenderWAV renders e into a PCM WAV file at sampleRate. The file is
// finalized even when the render stops early, so it holds every frame
// written so far.
func RenderWAV(ctx context.Context, e *engine.Engine, w io.WriteSeeker, sampleRate int, opts ...Option) (Result, error) {
	cfg := newConfig(opts)
	sink := &wavSink{w: w, sampleRate: sampleRate, bitDepth: cfg.bitDepth}

	res, err := Render(ctx, e, sink, opts...)
	if sink.enc != nil {
		if cerr := sink.enc.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}
	return res, err
}

// Buffer is a Sink that keeps every frame in memory.
type Buffer struct {
	Channels int
	Frames   [][]int32
}

func (b *Buffer) Start(channels int) error {
	b.Channels = channels
	return nil
}

func (b *Buffer) WriteFrame(frame []int32) error {
	b.Frames = append(b.Frames, slices.Clone(frame))
	return nil
}
