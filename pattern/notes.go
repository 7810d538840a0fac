// SPDX-License-Identifier: EPL-2.0

package pattern

import (
	"fmt"
	"math"
	"unicode"

	"github.com/vmihailenco/msgpack/v5"
)

// Key is a pitch class, counted in semitones above C.
type Key uint8

const (
	C Key = iota
	Db
	D
	Eb
	E
	F
	Gb
	G
	Ab
	A
	Bb
	B
)

var keyNames = [...]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("key(%d)", uint8(k))
}

// Note is a pitch in scientific notation, C4 being middle C.
//
// Notes travel through msgpack as their name, so "C#4" decodes into a
// Note wherever an instrument expects one.
type Note struct {
	Key    Key
	Octave int
}

// Number returns the MIDI note number. C4 is 60.
func (n Note) Number() int {
	return (n.Octave+1)*12 + int(n.Key)
}

// Frequency returns the equal-tempered frequency in Hz, with A4 at 440.
func (n Note) Frequency() float64 {
	return 440 * math.Pow(2, float64(n.Number()-69)/12)
}

func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Key, n.Octave)
}

var naturals = map[rune]Key{'c': C, 'd': D, 'e': E, 'f': F, 'g': G, 'a': A, 'b': B}

// ParseNote parses a name such as "C4", "c#3" or "Eb2". Sharps and flats
// that would leave the octave (Cb, B#, E#, Fb) are rejected.
func ParseNote(s string) (Note, error) {
	n, err := parseNote([]rune(s))
	if err != nil {
		return Note{}, fmt.Errorf("%w %q: %s", ErrInvalidNote, s, err)
	}
	return n, nil
}

type noteError string

func (e noteError) Error() string { return string(e) }

func parseNote(rs []rune) (Note, error) {
	if len(rs) != 2 && len(rs) != 3 {
		return Note{}, noteError("want a key, an optional accidental and a one digit octave")
	}

	key, ok := naturals[unicode.ToLower(rs[0])]
	if !ok {
		return Note{}, noteError("invalid key")
	}

	if len(rs) == 3 {
		switch {
		case rs[1] == '#' && key != E && key != B:
			key++
		case rs[1] == 'b' && key != C && key != F:
			key--
		default:
			return Note{}, noteError("invalid accidental")
		}
	}

	octave := rs[len(rs)-1]
	if octave < '0' || octave > '9' {
		return Note{}, noteError("invalid octave number")
	}
	return Note{Key: key, Octave: int(octave - '0')}, nil
}

// ParseNotes reads whitespace separated note names, one per grid position.
// Errors carry the rune offset of the faulty name.
func ParseNotes(s string) ([]Note, error) {
	var (
		notes []Note
		word  []rune
		start int
	)

	flush := func() error {
		if len(word) == 0 {
			return nil
		}
		n, err := parseNote(word)
		if err != nil {
			return fmt.Errorf("%w at %d (%q): %s", ErrInvalidNote, start, string(word), err)
		}
		notes = append(notes, n)
		word = word[:0]
		return nil
	}

	for i, r := range []rune(s) {
		if unicode.IsSpace(r) {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if len(word) == 0 {
			start = i
		}
		word = append(word, r)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return notes, nil
}

var _ msgpack.CustomEncoder = Note{}
var _ msgpack.CustomDecoder = (*Note)(nil)

func (n Note) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(n.String())
}

func (n *Note) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}
	parsed, err := ParseNote(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}
