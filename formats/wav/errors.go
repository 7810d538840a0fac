// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"

	"github.com/ik5/audsched/formats/internal/intpcm"
)

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrUnsupportedBitDepth  = intpcm.ErrUnsupportedBitDepth
	ErrInvalidFormat        = errors.New("invalid WAV format")
	ErrFrameWidth           = errors.New("frame width does not match channel count")
)
