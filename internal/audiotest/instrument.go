// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"fmt"

	"github.com/ik5/audsched/audio"
	"github.com/ik5/audsched/instrument"
)

// Command is the event type understood by Instrument.
type Command string

const (
	Play    Command = "play"
	Stop    Command = "stop"
	Reject  Command = "reject"
	Explode Command = "explode"
)

var (
	ErrRejected       = errors.New("audiotest: command rejected")
	ErrUnknownCommand = errors.New("audiotest: unknown command")
)

// Applied records a command together with the number of frames pulled
// before it arrived.
type Applied struct {
	Command Command
	Pulls   int
}

// Instrument is a scripted instrument. It plays Frame while Left is not
// zero (negative plays forever), and returns Errors[n] instead of a frame
// on the n-th pull, counting from 1.
type Instrument struct {
	Frame   audio.Sample
	Left    int
	Errors  map[int]error
	PanicAt int

	Pulls   int
	Applied []Applied
}

// NewConstant plays frame forever.
func NewConstant(frame audio.Sample) *Instrument {
	return &Instrument{Frame: frame, Left: -1}
}

// NewFinite plays frame n times, then reports exhaustion until restarted.
func NewFinite(frame audio.Sample, n int) *Instrument {
	return &Instrument{Frame: frame, Left: n}
}

// NewSilent plays 16-bit silence forever.
func NewSilent(channels int) *Instrument {
	return NewConstant(audio.Silence(audio.EncodingS16, channels))
}

// Handle wraps inst for the engine.
func Handle(inst *Instrument) *instrument.Handle {
	return instrument.New[Command](inst)
}

func (m *Instrument) NextSample() (audio.Sample, bool, error) {
	m.Pulls++
	if m.PanicAt != 0 && m.PanicAt == m.Pulls {
		panic(fmt.Sprintf("audiotest: panic on pull %d", m.Pulls))
	}
	if err, ok := m.Errors[m.Pulls]; ok {
		return audio.Empty(), false, err
	}
	if m.Left == 0 {
		return audio.Empty(), false, nil
	}
	if m.Left > 0 {
		m.Left--
	}
	return m.Frame.Clone(), true, nil
}

func (m *Instrument) Transform(c Command) error {
	m.Applied = append(m.Applied, Applied{Command: c, Pulls: m.Pulls})

	switch c {
	case Play:
		m.Left = -1
	case Stop:
		m.Left = 0
	case Reject:
		return ErrRejected
	case Explode:
		panic("audiotest: exploding command")
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, c)
	}
	return nil
}

func (m *Instrument) Help() string {
	return fmt.Sprintf("audiotest instrument playing %v", m.Frame)
}

// Args configures instruments built by Factory.
type Args struct {
	Value    int32 `msgpack:"value"`
	Channels int   `msgpack:"channels"`
	Frames   int   `msgpack:"frames"`
}

// Factory builds S32 instruments through the routes "constant" and
// "finite".
func Factory() *instrument.Factory {
	return instrument.Define[Args, Command]("mock", "mock instrument for tests",
		func(route string, args Args) (*Instrument, error) {
			channels := max(args.Channels, 1)
			vals := make([]int32, channels)
			for i := range vals {
				vals[i] = args.Value
			}

			switch route {
			case "constant":
				return NewConstant(audio.S32(vals...)), nil
			case "finite":
				return NewFinite(audio.S32(vals...), args.Frames), nil
			default:
				return nil, fmt.Errorf("%w: %q", instrument.ErrUnknownRoute, route)
			}
		})
}
