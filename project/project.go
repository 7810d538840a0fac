// SPDX-License-Identifier: EPL-2.0

package project

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/ik5/audsched/engine"
	"github.com/ik5/audsched/instrument"
	"github.com/ik5/audsched/instruments/sampler"
	"github.com/ik5/audsched/instruments/tone"
	"github.com/ik5/audsched/pattern"
)

// Option configures Build.
type Option interface {
	apply(*config)
}

type config struct {
	logger *slog.Logger
}

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(c *config) { c.logger = o.logger }

// WithLogger sets the logger used while building tracks.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

// NewCatalog returns a catalog holding every instrument shipped with the
// module. Sampler paths resolve against dir.
func NewCatalog(dir string, logger *slog.Logger) *instrument.Catalog {
	if logger == nil {
		logger = slog.Default()
	}
	return instrument.NewCatalog(
		sampler.Factory(sampler.WithDir(dir), sampler.WithLogger(logger)),
		tone.Factory(),
	)
}

// Project is a File whose instruments were constructed and whose tracks
// were parsed into positioned events.
type Project struct {
	file    *File
	names   []string
	handles map[string]*instrument.Handle
	tracks  [][]engine.Pair
	length  int
}

// Build constructs every instrument of f through catalog and parses its
// tracks. On failure every instrument built so far is closed.
func (f *File) Build(catalog *instrument.Catalog, opts ...Option) (*Project, error) {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	p := &Project{
		file:    f,
		names:   f.Names(),
		handles: make(map[string]*instrument.Handle, len(f.Instruments)),
	}

	for _, name := range p.names {
		decl := f.Instruments[name]
		h, err := catalog.Initialize(decl.Type, decl.Route, f.args(decl))
		if err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("instrument %q: %w", name, err)
		}
		p.handles[name] = h
		f.checkRate(name, h, cfg.logger)
	}

	for i, t := range f.Tracks {
		pairs, length, err := t.events(p.handles[t.Instrument], cfg.logger)
		if err != nil {
			_ = p.Close()
			return nil, fmt.Errorf("track %d: %w", i, err)
		}
		cfg.logger.Debug("track parsed", "track", i, "instrument", t.Instrument, "events", len(pairs), "length", length)
		p.tracks = append(p.tracks, pairs)
		p.length = max(p.length, length)
	}

	return p, nil
}

// args fills in the project sample rate for oscillators that do not set
// their own.
func (f *File) args(decl Instrument) any {
	if decl.Type != tone.Name {
		return decl.Args
	}

	m, ok := decl.Args.(map[string]any)
	switch {
	case decl.Args == nil:
		m = map[string]any{}
	case !ok:
		return decl.Args
	default:
		m = maps.Clone(m)
	}
	if _, set := m["sample_rate"]; !set {
		m["sample_rate"] = f.SampleRate
	}
	return m
}

// checkRate warns about samples recorded at another rate. Frames are never
// resampled.
func (f *File) checkRate(name string, h *instrument.Handle, logger *slog.Logger) {
	if h.Name() != sampler.Name {
		return
	}
	err := instrument.With(h, func(s *sampler.Sampler) error {
		if s.SampleRate() != f.SampleRate {
			logger.Warn("sample rate mismatch", "instrument", name, "path", s.Path(), "file_rate", s.SampleRate(), "project_rate", f.SampleRate)
		}
		return nil
	})
	if err != nil {
		logger.Debug("sample rate not checked", "instrument", name, "error", err)
	}
}

// events turns t into pairs for h. length is the first grid position after
// the last loop of the track.
func (t Track) events(h *instrument.Handle, logger *slog.Logger) (pairs []engine.Pair, length int, err error) {
	var (
		items []pattern.Item
		span  int
	)

	if t.Notes != "" {
		notes, err := pattern.ParseNotes(t.Notes)
		if err != nil {
			return nil, 0, err
		}
		for i, n := range notes {
			items = append(items, pattern.Item{Offset: i, Event: n})
		}
		span = len(notes)
	} else {
		opts := []pattern.Option{pattern.WithLogger(logger)}
		if t.LongestFirst {
			opts = append(opts, pattern.WithLongestFirst())
		}
		parser := pattern.New(opts...)

		table := pattern.Bindings(t.Bindings...)
		if t.Repeat != nil {
			table = pattern.Repeat(t.Repeat)
		}
		if err := parser.Extend(table); err != nil {
			return nil, 0, err
		}
		if items, err = parser.Parse(t.Pattern); err != nil {
			return nil, 0, err
		}
		span = pattern.Len(t.Pattern)
	}

	loops := max(t.Loop, 1)
	pairs = make([]engine.Pair, 0, len(items)*loops)
	for l := range loops {
		pairs = append(pairs, Pairs(items, h, t.Offset+l*span)...)
	}
	return pairs, t.Offset + loops*span, nil
}

// Pairs binds parsed items to h, placing each at base plus its offset.
func Pairs(items []pattern.Item, h *instrument.Handle, base int) []engine.Pair {
	out := make([]engine.Pair, 0, len(items))
	for _, it := range items {
		out = append(out, engine.Pair{
			Position: base + it.Offset,
			Event:    instrument.Event{Handle: h, Value: it.Event},
		})
	}
	return out
}

func (p *Project) File() *File { return p.file }

// Handle returns the instrument declared under name.
func (p *Project) Handle(name string) (*instrument.Handle, bool) {
	h, ok := p.handles[name]
	return h, ok
}

// Events returns the positioned events of track i. ok is false when the
// project has no such track.
func (p *Project) Events(i int) (pairs []engine.Pair, ok bool) {
	if i < 0 || i >= len(p.tracks) {
		return nil, false
	}
	return p.tracks[i], true
}

// Duration is the number of frames a render covers: the declared duration,
// or enough grid steps to reach the end of the longest track.
func (p *Project) Duration() int {
	if p.file.Duration > 0 {
		return p.file.Duration
	}
	return p.length * p.file.Interval
}

// Engine builds a fresh engine over the project's instruments and merged
// tracks. Instruments keep their state between engines.
func (p *Project) Engine(opts ...engine.Option) (*engine.Engine, error) {
	handles := make([]*instrument.Handle, 0, len(p.names))
	for _, name := range p.names {
		handles = append(handles, p.handles[name])
	}

	streams := make([]engine.Stream, 0, len(p.tracks))
	for _, pairs := range p.tracks {
		streams = append(streams, engine.Events(pairs...))
	}

	return engine.New(handles, engine.Merge(streams...), p.file.Interval, p.Duration(), opts...)
}

// Close releases every instrument.
func (p *Project) Close() error {
	var errs []error
	for _, name := range p.names {
		if h, ok := p.handles[name]; ok {
			if err := h.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %q: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}
