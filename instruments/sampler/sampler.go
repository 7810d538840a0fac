// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ik5/audsched/audio"
)

// Sampler plays a decoded audio file. It starts paused; Play rewinds and
// starts it. While paused or muted it yields empty frames, and once the end
// of the file is reached it reports exhaustion until rewound.
type Sampler struct {
	path       string
	route      string
	sampleRate int
	channels   int
	encoding   audio.Encoding

	playing bool
	muted   bool
	reader  reader

	logger *slog.Logger
}

func (s *Sampler) NextSample() (audio.Sample, bool, error) {
	if !s.playing {
		return audio.Empty(), true, nil
	}

	frame, ok, err := s.reader.next()
	if err != nil || !ok {
		return frame, ok, err
	}
	if s.muted {
		return audio.Empty(), true, nil
	}
	return frame, true, nil
}

func (s *Sampler) Transform(c Control) error {
	s.logger.Debug("sampler control", "path", s.path, "control", c.String())

	switch c.Op {
	case OpPlay:
		if err := s.reader.rewind(); err != nil {
			return fmt.Errorf("rewinding %s: %w", s.path, err)
		}
		s.playing = true
	case OpStop:
		if err := s.reader.rewind(); err != nil {
			return fmt.Errorf("rewinding %s: %w", s.path, err)
		}
		s.playing = false
	case OpPause:
		s.playing = false
	case OpResume:
		s.playing = true
	case OpReverse:
		return s.reader.reverse()
	case OpMute:
		s.muted = true
	case OpUnmute:
		s.muted = false
	case OpSeek:
		if c.Offset < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeSeek, c.Offset)
		}
		if err := s.reader.seek(s.frameAt(c.Offset)); err != nil {
			return fmt.Errorf("seeking %s to %s: %w", s.path, c.Offset, err)
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnknownControl, c.Op)
	}
	return nil
}

func (s *Sampler) describe(src audio.Source) {
	s.sampleRate = src.SampleRate()
	s.channels = src.Channels()
	s.encoding = src.Encoding()
}

func (s *Sampler) frameAt(d time.Duration) int {
	return int(int64(d) * int64(s.sampleRate) / int64(time.Second))
}

func (s *Sampler) Help() string {
	return fmt.Sprintf("sampler: reads and manipulates digital audio\n"+
		"this sampler holds %s (%s, %d Hz, %d channels, %s)",
		s.path, s.route, s.sampleRate, s.channels, s.encoding)
}

func (s *Sampler) Path() string            { return s.path }
func (s *Sampler) SampleRate() int         { return s.sampleRate }
func (s *Sampler) Channels() int           { return s.channels }
func (s *Sampler) Encoding() audio.Encoding { return s.encoding }
func (s *Sampler) Playing() bool           { return s.playing }

// Close releases the decoder and the backing file.
func (s *Sampler) Close() error {
	return s.reader.close()
}
