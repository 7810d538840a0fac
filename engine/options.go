// SPDX-License-Identifier: EPL-2.0

package engine

import "log/slog"

// Option configures an Engine.
type Option interface {
	apply(*Engine)
}

type loggerOption struct {
	logger *slog.Logger
}

func (o loggerOption) apply(e *Engine) {
	e.logger = o.logger
}

// WithLogger sets the logger used for dispatch records. Defaults to
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return loggerOption{logger: logger}
}
