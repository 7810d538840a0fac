// SPDX-License-Identifier: EPL-2.0

package tone

import (
	"fmt"
	"math"
	"strings"

	"github.com/ik5/audsched/audio"
	"github.com/ik5/audsched/pattern"
	"github.com/ik5/audsched/utils"
	"github.com/vmihailenco/msgpack/v5"
)

// Waveform maps a phase in [0, 1) to an amplitude in [-1, 1].
type Waveform func(phase float64) float64

func Sine(phase float64) float64 { return math.Sin(2 * math.Pi * phase) }

func Square(phase float64) float64 {
	if phase < 0.5 {
		return 1
	}
	return -1
}

func Saw(phase float64) float64 { return 2*phase - 1 }

func Triangle(phase float64) float64 {
	if phase < 0.5 {
		return 4*phase - 1
	}
	return 3 - 4*phase
}

var waveforms = map[string]Waveform{
	"sine":     Sine,
	"square":   Square,
	"saw":      Saw,
	"triangle": Triangle,
}

// Event starts a note, replacing the sounding one, or silences the tone.
// It is written as a note name ("C#4") or "off".
type Event struct {
	Note pattern.Note
	Off  bool
}

// Off silences the tone.
var Off = Event{Off: true}

// On starts n.
func On(n pattern.Note) Event { return Event{Note: n} }

func (e Event) String() string {
	if e.Off {
		return "off"
	}
	return e.Note.String()
}

func (e Event) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(e.String())
}

func (e *Event) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}
	if s = strings.TrimSpace(s); strings.EqualFold(s, "off") || s == "-" {
		*e = Off
		return nil
	}
	n, err := pattern.ParseNote(s)
	if err != nil {
		return err
	}
	*e = On(n)
	return nil
}

// Tone is a single-voice oscillator producing 16-bit frames. It is silent,
// and reports nothing to play, until it receives a note.
type Tone struct {
	name       string
	wave       Waveform
	amplitude  float64
	sampleRate int
	channels   int

	note     pattern.Note
	sounding bool
	step     float64
	phase    float64

	frame []int16
}

func (t *Tone) NextSample() (audio.Sample, bool, error) {
	if !t.sounding {
		return audio.Empty(), false, nil
	}

	v := utils.Float32ToInt16(float32(t.amplitude * t.wave(t.phase)))
	t.phase += t.step
	t.phase -= math.Floor(t.phase)

	for i := range t.frame {
		t.frame[i] = v
	}
	return audio.S16(t.frame...).Clone(), true, nil
}

// Transform restarts the phase on every new note.
func (t *Tone) Transform(e Event) error {
	if e.Off {
		t.sounding = false
		return nil
	}

	freq := e.Note.Frequency()
	if freq*2 > float64(t.sampleRate) {
		return fmt.Errorf("%w: %v (%.1f Hz) at %d Hz", ErrAboveNyquist, e.Note, freq, t.sampleRate)
	}

	t.note = e.Note
	t.step = freq / float64(t.sampleRate)
	t.phase = 0
	t.sounding = true
	return nil
}

func (t *Tone) Help() string {
	state := "silent"
	if t.sounding {
		state = "playing " + t.note.String()
	}
	return fmt.Sprintf("tone: %s oscillator, %d Hz, %d channels, amplitude %.2f, %s",
		t.name, t.sampleRate, t.channels, t.amplitude, state)
}
