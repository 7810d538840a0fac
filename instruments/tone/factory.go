// SPDX-License-Identifier: EPL-2.0

package tone

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ik5/audsched/instrument"
)

// Name is the catalog name of the oscillator.
const Name = "tone"

var (
	ErrAboveNyquist     = errors.New("tone: note above the Nyquist frequency")
	ErrInvalidAmplitude = errors.New("tone: amplitude must be within [0, 1]")
	ErrInvalidArgs      = errors.New("tone: invalid arguments")
)

const (
	defaultAmplitude  = 0.5
	defaultSampleRate = 44100
)

// Args configures an oscillator. Zero fields take the defaults: amplitude
// 0.5, 44100 Hz, one channel.
type Args struct {
	Amplitude  float64 `msgpack:"amplitude"`
	SampleRate int     `msgpack:"sample_rate"`
	Channels   int     `msgpack:"channels"`
}

// Factory returns the oscillator factory. The route names the waveform:
// sine, square, saw or triangle.
func Factory() *instrument.Factory {
	routes := slices.Sorted(maps.Keys(waveforms))
	manual := fmt.Sprintf(`tone: single-voice oscillator producing 16-bit frames

routes: %s
args: {amplitude: 0.5, sample_rate: 44100, channels: 1}
events: a note name such as C4, c#3 or Eb2, or "off"`, strings.Join(routes, ", "))

	return instrument.Define[Args, Event](Name, manual, func(route string, args Args) (*Tone, error) {
		wave, ok := waveforms[route]
		if !ok {
			return nil, fmt.Errorf("%w: %q, available: %s", instrument.ErrUnknownRoute, route, strings.Join(routes, ", "))
		}
		return New(route, wave, args)
	})
}

// New builds an oscillator outside of a catalog.
func New(name string, wave Waveform, args Args) (*Tone, error) {
	if args.Amplitude == 0 {
		args.Amplitude = defaultAmplitude
	}
	if args.SampleRate == 0 {
		args.SampleRate = defaultSampleRate
	}
	if args.Channels == 0 {
		args.Channels = 1
	}

	if args.Amplitude < 0 || args.Amplitude > 1 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidAmplitude, args.Amplitude)
	}
	if args.SampleRate < 0 || args.Channels < 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidArgs, args.SampleRate, args.Channels)
	}

	return &Tone{
		name:       name,
		wave:       wave,
		amplitude:  args.Amplitude,
		sampleRate: args.SampleRate,
		channels:   args.Channels,
		frame:      make([]int16, args.Channels),
	}, nil
}
