// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"fmt"
	"strings"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// Op is a playback command.
type Op uint8

const (
	OpPlay Op = iota + 1
	OpStop
	OpPause
	OpResume
	OpReverse
	OpMute
	OpUnmute
	OpSeek
)

var opNames = map[Op]string{
	OpPlay:    "play",
	OpStop:    "stop",
	OpPause:   "pause",
	OpResume:  "resume",
	OpReverse: "reverse",
	OpMute:    "mute",
	OpUnmute:  "unmute",
	OpSeek:    "seek",
}

func (o Op) String() string {
	if s, ok := opNames[o]; ok {
		return s
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Control is the event type of the sampler. In patterns and project files
// it is written as its name ("play", "pause") or, for seeks, as
// "seek 1.5s" or {seek: 1.5s}.
type Control struct {
	Op     Op
	Offset time.Duration
}

var (
	Play    = Control{Op: OpPlay}
	Stop    = Control{Op: OpStop}
	Pause   = Control{Op: OpPause}
	Resume  = Control{Op: OpResume}
	Reverse = Control{Op: OpReverse}
	Mute    = Control{Op: OpMute}
	Unmute  = Control{Op: OpUnmute}
)

// Seek jumps to offset from the start of the sample.
func Seek(offset time.Duration) Control {
	return Control{Op: OpSeek, Offset: offset}
}

func (c Control) String() string {
	if c.Op == OpSeek {
		return fmt.Sprintf("seek %s", c.Offset)
	}
	return c.Op.String()
}

// ParseControl reads the textual form of a Control.
func ParseControl(s string) (Control, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(s), " ")
	name = strings.ToLower(name)

	if name == "seek" {
		return parseSeek(arg)
	}
	if arg != "" {
		return Control{}, fmt.Errorf("%w: %q", ErrUnknownControl, s)
	}
	for op, n := range opNames {
		if n == name && op != OpSeek {
			return Control{Op: op}, nil
		}
	}
	return Control{}, fmt.Errorf("%w: %q", ErrUnknownControl, s)
}

func parseSeek(arg string) (Control, error) {
	d, err := time.ParseDuration(strings.TrimSpace(arg))
	if err != nil {
		return Control{}, fmt.Errorf("parsing seek offset: %w", err)
	}
	if d < 0 {
		return Control{}, fmt.Errorf("%w: %s", ErrNegativeSeek, d)
	}
	return Seek(d), nil
}

func (c Control) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(c.String())
}

func (c *Control) DecodeMsgpack(dec *msgpack.Decoder) error {
	code, err := dec.PeekCode()
	if err != nil {
		return err
	}

	if msgpcode.IsString(code) {
		s, err := dec.DecodeString()
		if err != nil {
			return err
		}
		*c, err = ParseControl(s)
		return err
	}

	var m map[string]string
	if err := dec.Decode(&m); err != nil {
		return err
	}
	arg, ok := m["seek"]
	if !ok || len(m) != 1 {
		return fmt.Errorf("%w: %v", ErrUnknownControl, m)
	}
	*c, err = parseSeek(arg)
	return err
}
