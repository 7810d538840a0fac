// SPDX-License-Identifier: EPL-2.0

package audsched

import "errors"

var (
	// ErrSilentRender is returned when a render ends before any instrument
	// produced a frame, so the channel count was never learned.
	ErrSilentRender    = errors.New("audsched: no instrument produced a frame")
	ErrInvalidChannels = errors.New("audsched: channel count must be positive")
)
