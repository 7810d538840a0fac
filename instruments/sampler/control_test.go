// SPDX-License-Identifier: EPL-2.0

package sampler

import (
	"errors"
	"testing"
	"time"

	"github.com/ik5/audsched/instrument"
)

func TestParseControl(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Control
		wantErr error
	}{
		{in: "play", want: Play},
		{in: " Stop ", want: Stop},
		{in: "pause", want: Pause},
		{in: "resume", want: Resume},
		{in: "reverse", want: Reverse},
		{in: "mute", want: Mute},
		{in: "unmute", want: Unmute},
		{in: "seek 1.5s", want: Seek(1500 * time.Millisecond)},
		{in: "seek", wantErr: nil},
		{in: "seek -2s", wantErr: ErrNegativeSeek},
		{in: "play now", wantErr: ErrUnknownControl},
		{in: "rewind", wantErr: ErrUnknownControl},
	}

	for _, tt := range tests {
		got, err := ParseControl(tt.in)
		switch {
		case tt.in == "seek":
			if err == nil {
				t.Errorf("ParseControl(%q) expected an error", tt.in)
			}
		case tt.wantErr != nil:
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseControl(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
		case err != nil:
			t.Errorf("ParseControl(%q) error = %v", tt.in, err)
		case got != tt.want:
			t.Errorf("ParseControl(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestControl_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, c := range []Control{Play, Stop, Reverse, Seek(250 * time.Millisecond)} {
		raw, err := instrument.Encode(c)
		if err != nil {
			t.Fatalf("Encode(%v) error = %v", c, err)
		}
		got, err := instrument.Decode[Control](raw)
		if err != nil {
			t.Fatalf("Decode(%v) error = %v", c, err)
		}
		if got != c {
			t.Errorf("round trip of %v = %v", c, got)
		}
	}
}

func TestArgs_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   any
		want Args
	}{
		{"kick.wav", Args{Path: "kick.wav"}},
		{map[string]any{"path": "a.ogg", "mono": true}, Args{Path: "a.ogg", Mono: true}},
		{map[string]any{"path": "loop", "format": "wav"}, Args{Path: "loop", Format: "wav"}},
	}

	for _, tt := range tests {
		got, err := instrument.Decode[Args](tt.in)
		if err != nil {
			t.Errorf("Decode(%v) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Decode(%v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}
