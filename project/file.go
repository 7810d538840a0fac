// SPDX-License-Identifier: EPL-2.0

package project

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/ik5/audsched/pattern"
)

// File is the YAML description of a render.
type File struct {
	SampleRate int `yaml:"sample_rate"`
	// Interval is the number of frames between two grid positions.
	Interval int `yaml:"interval"`
	// Duration is the number of frames to render. Zero renders until the
	// longest track ends.
	Duration int `yaml:"duration"`
	BitDepth int `yaml:"bit_depth"`
	// Channels forces the output width. Zero takes it from the first
	// produced frame.
	Channels int `yaml:"channels"`

	Instruments map[string]Instrument `yaml:"instruments"`
	Tracks      []Track               `yaml:"tracks"`

	dir string
}

// Instrument names a catalog entry and how to construct it.
type Instrument struct {
	Type  string `yaml:"type"`
	Route string `yaml:"route"`
	// Args is handed to the factory as is: a scalar or a map.
	Args any `yaml:"args"`
}

// Track feeds one instrument. A track is either a pattern read through
// Bindings (or Repeat), or a list of note names played one per grid
// position.
type Track struct {
	Instrument string `yaml:"instrument"`

	Bindings     []pattern.Binding `yaml:"bindings"`
	Repeat       any               `yaml:"repeat"`
	Pattern      string            `yaml:"pattern"`
	LongestFirst bool              `yaml:"longest_first"`

	Notes string `yaml:"notes"`

	// Offset shifts every event of the track by that many positions.
	Offset int `yaml:"offset"`
	// Loop plays the track that many times back to back. Zero means once.
	Loop int `yaml:"loop"`
}

// Load reads and validates a project file. Relative sample paths are
// resolved against the directory holding it.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	f.dir = filepath.Dir(path)
	return f, nil
}

// Parse decodes and validates a project document. Unknown keys are
// rejected.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.DisallowUnknownField()); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Dir is the directory relative sample paths resolve against.
func (f *File) Dir() string {
	if f.dir == "" {
		return "."
	}
	return f.dir
}

// Names lists the declared instruments in sorted order.
func (f *File) Names() []string {
	return slices.Sorted(maps.Keys(f.Instruments))
}

// Validate reports every problem found in f.
func (f *File) Validate() error {
	var errs []error

	if f.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("%w: sample_rate %d", ErrInvalidTiming, f.SampleRate))
	}
	if f.Interval <= 0 {
		errs = append(errs, fmt.Errorf("%w: interval %d", ErrInvalidTiming, f.Interval))
	}
	if f.Duration < 0 {
		errs = append(errs, fmt.Errorf("%w: duration %d", ErrInvalidTiming, f.Duration))
	}

	for _, name := range f.Names() {
		if f.Instruments[name].Type == "" {
			errs = append(errs, fmt.Errorf("instrument %q: %w", name, ErrMissingType))
		}
	}

	for i, t := range f.Tracks {
		if err := f.validateTrack(t); err != nil {
			errs = append(errs, fmt.Errorf("track %d: %w", i, err))
		}
	}

	return errors.Join(errs...)
}

func (f *File) validateTrack(t Track) error {
	if _, ok := f.Instruments[t.Instrument]; !ok {
		return fmt.Errorf("%w: %q", ErrUndefinedInstrument, t.Instrument)
	}
	if t.Offset < 0 || t.Loop < 0 {
		return fmt.Errorf("%w: offset %d, loop %d", ErrInvalidTrackPosition, t.Offset, t.Loop)
	}

	switch {
	case t.Notes != "" && (t.Pattern != "" || len(t.Bindings) > 0 || t.Repeat != nil):
		return ErrAmbiguousTrack
	case t.Notes != "":
		return nil
	case t.Pattern == "":
		return ErrNoTrackSource
	case len(t.Bindings) == 0 && t.Repeat == nil:
		return ErrNoTable
	case len(t.Bindings) > 0 && t.Repeat != nil:
		return fmt.Errorf("%w: both bindings and repeat given", ErrAmbiguousTrack)
	}
	return nil
}
