// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audsched/audio"
	"github.com/ik5/audsched/instrument"
)

const readSize = 1024

// reader is the playback cursor over decoded frames.
type reader interface {
	next() (audio.Sample, bool, error)
	rewind() error
	seek(frame int) error
	reverse() error
	close() error
}

// memReader plays frames held in memory, in either direction.
type memReader struct {
	frames   []audio.Sample
	cursor   int
	backward bool
}

func (m *memReader) next() (audio.Sample, bool, error) {
	if m.backward {
		if m.cursor <= 0 {
			return audio.Empty(), false, nil
		}
		m.cursor--
		return m.frames[m.cursor], true, nil
	}

	if m.cursor >= len(m.frames) {
		return audio.Empty(), false, nil
	}
	m.cursor++
	return m.frames[m.cursor-1], true, nil
}

func (m *memReader) rewind() error {
	if m.backward {
		m.cursor = len(m.frames)
	} else {
		m.cursor = 0
	}
	return nil
}

func (m *memReader) seek(frame int) error {
	m.cursor = min(frame, len(m.frames))
	return nil
}

func (m *memReader) reverse() error {
	m.backward = !m.backward
	return nil
}

func (m *memReader) close() error { return nil }

// streamReader decodes frames on demand. Rewinding reopens the file.
type streamReader struct {
	open func() (audio.Source, io.Closer, error)

	src  audio.Source
	file io.Closer
	buf  []audio.Sample
	pos  int
	n    int
	eof  bool
}

func newStreamReader(open func() (audio.Source, io.Closer, error)) (*streamReader, error) {
	r := &streamReader{open: open, buf: make([]audio.Sample, readSize)}
	if err := r.rewind(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *streamReader) next() (audio.Sample, bool, error) {
	if r.pos < r.n {
		r.pos++
		return r.buf[r.pos-1].Clone(), true, nil
	}
	if r.eof {
		return audio.Empty(), false, nil
	}

	n, err := r.src.ReadFrames(r.buf)
	r.pos, r.n = 0, n
	switch {
	case errors.Is(err, io.EOF):
		r.eof = true
	case err != nil:
		return audio.Empty(), false, instrument.FatalError(fmt.Errorf("reading frames: %w", err))
	}

	if n == 0 {
		if r.eof {
			return audio.Empty(), false, nil
		}
		return audio.Empty(), false, instrument.OnceError(ErrEmptyRead)
	}
	r.pos++
	return r.buf[0].Clone(), true, nil
}

func (r *streamReader) rewind() error {
	if err := r.close(); err != nil {
		return err
	}

	src, file, err := r.open()
	if err != nil {
		return err
	}
	r.src, r.file = src, file
	r.pos, r.n, r.eof = 0, 0, false
	return nil
}

// seek reopens the file and skips frame frames.
func (r *streamReader) seek(frame int) error {
	if err := r.rewind(); err != nil {
		return err
	}

	for frame > 0 {
		n, err := r.src.ReadFrames(r.buf[:min(frame, len(r.buf))])
		frame -= n
		if errors.Is(err, io.EOF) {
			r.eof = true
			return nil
		}
		if err != nil {
			return fmt.Errorf("skipping frames: %w", err)
		}
		if n == 0 {
			return ErrEmptyRead
		}
	}
	return nil
}

func (r *streamReader) reverse() error { return ErrReverseOpened }

func (r *streamReader) close() error {
	var errs []error
	if r.src != nil {
		errs = append(errs, r.src.Close())
	}
	if r.file != nil {
		errs = append(errs, r.file.Close())
	}
	r.src, r.file = nil, nil
	return errors.Join(errs...)
}
