// SPDX-License-Identifier: EPL-2.0

package audsched

import "log/slog"

// Option configures Render and RenderWAV.
type Option interface {
	apply(*config)
}

type config struct {
	channels int
	bitDepth int
	strict   bool
	logger   *slog.Logger
}

func newConfig(opts []Option) *config {
	c := &config{
		bitDepth: 32,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt.apply(c)
	}
	return c
}

type channelsOption int

func (o channelsOption) apply(c *config) { c.channels = int(o) }

// WithChannels fixes the output width instead of learning it from the
// first produced frame. Leading silence is then written as it comes.
func WithChannels(n int) Option { return channelsOption(n) }

type bitDepthOption int

func (o bitDepthOption) apply(c *config) { c.bitDepth = int(o) }

// WithBitDepth sets the WAV sample width: 8, 16, 24 or 32 (the default).
func WithBitDepth(bits int) Option { return bitDepthOption(bits) }

type strictOption struct{}

func (strictOption) apply(c *config) { c.strict = true }

// WithStrict stops the render on the first Once source error instead of
// logging it and going on.
func WithStrict() Option { return strictOption{} }

type loggerOption struct{ logger *slog.Logger }

func (o loggerOption) apply(c *config) { c.logger = o.logger }

// WithLogger sets the logger for render progress and Once errors.
func WithLogger(logger *slog.Logger) Option { return loggerOption{logger: logger} }
