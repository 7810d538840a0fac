// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be at least one frame")

	// ErrChannelInconsistency is returned when samples with differing channel
	// counts are combined.
	ErrChannelInconsistency = errors.New("channel inconsistency")

	// ErrUnsupportedFormat is returned by Registry.ForPath when no decoder is
	// registered for a file extension.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)
