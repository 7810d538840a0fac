// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audsched/audio"
	"github.com/ik5/audsched/formats/aiff"
	"github.com/ik5/audsched/formats/mp3"
	"github.com/ik5/audsched/formats/vorbis"
	"github.com/ik5/audsched/formats/wav"
	"github.com/ik5/audsched/instrument"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// Name is the catalog name of the sampler.
const Name = "sampler"

const manual = `sampler: plays WAV, AIFF, MP3 and Ogg Vorbis files

routes:
  open    stream the file from disk
  import  decode the whole file into memory; required for reverse

args: a path, or {path: kick.wav, mono: true, format: wav}

events: play, stop, pause, resume, reverse, mute, unmute, "seek 1.5s"`

// Args selects the file to play. It decodes from a bare path string or a
// map with the fields below.
type Args struct {
	Path string `msgpack:"path"`
	// Mono downmixes every frame to one channel.
	Mono bool `msgpack:"mono"`
	// Format overrides the file extension when picking a decoder.
	Format string `msgpack:"format"`
}

type argsFields Args

func (a *Args) DecodeMsgpack(dec *msgpack.Decoder) error {
	code, err := dec.PeekCode()
	if err != nil {
		return err
	}
	if msgpcode.IsString(code) {
		a.Path, err = dec.DecodeString()
		return err
	}
	return dec.Decode((*argsFields)(a))
}

// DefaultRegistry knows every decoder shipped with the module.
func DefaultRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register("wav", wav.Decoder{})
	r.Register("wave", wav.Decoder{})
	r.Register("aiff", aiff.Decoder{})
	r.Register("aif", aiff.Decoder{})
	r.Register("mp3", mp3.Decoder{})
	r.Register("ogg", vorbis.Decoder{})
	r.Register("oga", vorbis.Decoder{})
	return r
}

// Option configures the sampler Factory.
type Option interface {
	apply(*config)
}

type config struct {
	registry *audio.Registry
	open     func(name string) (io.ReadCloser, error)
	logger   *slog.Logger
}

type registryOption struct{ r *audio.Registry }

func (o registryOption) apply(c *config) { c.registry = o.r }

// WithRegistry replaces DefaultRegistry.
func WithRegistry(r *audio.Registry) Option { return registryOption{r: r} }

type fsOption struct{ fsys fs.FS }

func (o fsOption) apply(c *config) {
	c.open = func(name string) (io.ReadCloser, error) { return o.fsys.Open(name) }
}

// WithFS resolves paths inside fsys instead of the operating system.
func WithFS(fsys fs.FS) Option { return fsOption{fsys: fsys} }

type dirOption struct{ dir string }

func (o dirOption) apply(c *config) {
	c.open = func(name string) (io.ReadCloser, error) {
		name = filepath.FromSlash(name)
		if !filepath.IsAbs(name) {
			name = filepath.Join(o.dir, name)
		}
		return os.Open(name)
	}
}

// WithDir resolves relative paths against dir. Absolute paths are opened
// as given.
func WithDir(dir string) Option { return dirOption{dir: dir} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(c *config) { c.logger = o.logger }

// WithLogger sets the logger of every sampler built by the factory.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }

// Factory returns the sampler factory with the routes "open" and "import".
func Factory(opts ...Option) *instrument.Factory {
	c := &config{
		open:   func(name string) (io.ReadCloser, error) { return os.Open(name) },
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	if c.registry == nil {
		c.registry = DefaultRegistry()
	}

	return instrument.Define[Args, Control](Name, manual, c.build)
}

func (c *config) build(route string, args Args) (*Sampler, error) {
	if args.Path == "" {
		return nil, ErrNoPath
	}

	switch route {
	case "open":
		return c.load(route, args, false)
	case "import":
		return c.load(route, args, true)
	default:
		return nil, fmt.Errorf("%w: %q, available: open, import", instrument.ErrUnknownRoute, route)
	}
}

func (c *config) decoder(args Args) (audio.Decoder, error) {
	if args.Format != "" {
		d, ok := c.registry.Get(args.Format)
		if !ok {
			return nil, fmt.Errorf("%w: %q", audio.ErrUnsupportedFormat, args.Format)
		}
		return d, nil
	}
	return c.registry.ForPath(args.Path)
}

func (c *config) load(route string, args Args, entire bool) (*Sampler, error) {
	dec, err := c.decoder(args)
	if err != nil {
		return nil, err
	}

	open := func() (audio.Source, io.Closer, error) {
		f, err := c.open(filepath.ToSlash(args.Path))
		if err != nil {
			return nil, nil, err
		}
		src, err := dec.Decode(f)
		if err != nil {
			_ = f.Close()
			return nil, nil, fmt.Errorf("decoding %s: %w", args.Path, err)
		}
		if args.Mono {
			src = audio.NewMonoMixer(src)
		}
		return src, f, nil
	}

	s := &Sampler{
		path:   args.Path,
		route:  route,
		logger: c.logger,
	}

	if entire {
		src, file, err := open()
		if err != nil {
			return nil, err
		}
		s.describe(src)

		frames, err := audio.ReadAll(src, readSize)
		_ = src.Close()
		_ = file.Close()
		if err != nil {
			return nil, fmt.Errorf("importing %s: %w", args.Path, err)
		}
		s.reader = &memReader{frames: frames}
	} else {
		r, err := newStreamReader(open)
		if err != nil {
			return nil, err
		}
		s.describe(r.src)
		s.reader = r
	}

	c.logger.Debug("sampler loaded",
		"path", args.Path,
		"route", route,
		"format", strings.TrimPrefix(filepath.Ext(args.Path), "."),
		"sample_rate", s.sampleRate,
		"channels", s.channels,
		"encoding", s.encoding.String(),
	)
	return s, nil
}
