// SPDX-License-Identifier: EPL-2.0

package project

import "errors"

var (
	ErrInvalidTiming        = errors.New("invalid timing")
	ErrMissingType          = errors.New("instrument has no type")
	ErrUndefinedInstrument  = errors.New("track refers to an undefined instrument")
	ErrNoTrackSource        = errors.New("track has neither a pattern nor notes")
	ErrAmbiguousTrack       = errors.New("track mixes notes with a pattern")
	ErrNoTable              = errors.New("pattern track needs bindings or repeat")
	ErrInvalidTrackPosition = errors.New("invalid track offset or loop count")
)
