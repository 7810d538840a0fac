// SPDX-License-Identifier: EPL-2.0

package sampler

import "errors"

var (
	ErrNoPath         = errors.New("sampler: no file path given")
	ErrReverseOpened  = errors.New("sampler: cannot reverse an opened file, import it to load it into memory")
	ErrUnknownControl = errors.New("sampler: unknown control")
	ErrNegativeSeek   = errors.New("sampler: negative seek offset")
	ErrEmptyRead      = errors.New("sampler: decoder returned no frames")
)
