// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestWritePCM_Header(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sampleRate int
		channels   int
		bitDepth   int
		values     []int
	}{
		{"mono 16-bit", 8000, 1, 16, []int{1, 2, 3}},
		{"stereo 24-bit", 44100, 2, 24, []int{1, 2, 3, 4}},
		{"mono 8-bit", 22050, 1, 8, []int{128, 255}},
		{"quad 32-bit", 48000, 4, 32, []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := WritePCM(&buf, tt.sampleRate, tt.channels, tt.bitDepth, tt.values); err != nil {
				t.Fatalf("WritePCM() error = %v", err)
			}
			data := buf.Bytes()

			width := tt.bitDepth / 8
			dataSize := len(tt.values) * width
			if len(data) != 44+dataSize {
				t.Fatalf("file size = %d, want %d", len(data), 44+dataSize)
			}
			if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
				t.Error("missing RIFF/WAVE markers")
			}
			if got := binary.LittleEndian.Uint32(data[4:8]); got != uint32(36+dataSize) {
				t.Errorf("RIFF size = %d, want %d", got, 36+dataSize)
			}
			if got := binary.LittleEndian.Uint16(data[22:24]); int(got) != tt.channels {
				t.Errorf("channels = %d, want %d", got, tt.channels)
			}
			if got := binary.LittleEndian.Uint32(data[24:28]); int(got) != tt.sampleRate {
				t.Errorf("sample rate = %d, want %d", got, tt.sampleRate)
			}
			if got := binary.LittleEndian.Uint32(data[28:32]); int(got) != tt.sampleRate*tt.channels*width {
				t.Errorf("byte rate = %d, want %d", got, tt.sampleRate*tt.channels*width)
			}
			if got := binary.LittleEndian.Uint16(data[32:34]); int(got) != tt.channels*width {
				t.Errorf("block align = %d, want %d", got, tt.channels*width)
			}
			if got := binary.LittleEndian.Uint16(data[34:36]); int(got) != tt.bitDepth {
				t.Errorf("bits per sample = %d, want %d", got, tt.bitDepth)
			}
			if got := binary.LittleEndian.Uint32(data[40:44]); int(got) != dataSize {
				t.Errorf("data size = %d, want %d", got, dataSize)
			}
		})
	}
}

func TestWritePCM_ByteOrder(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WritePCM(&buf, 8000, 1, 24, []int{0x123456, -2}); err != nil {
		t.Fatalf("WritePCM() error = %v", err)
	}

	want := []byte{0x56, 0x34, 0x12, 0xFE, 0xFF, 0xFF}
	if got := buf.Bytes()[44:]; !bytes.Equal(got, want) {
		t.Errorf("payload = % x, want % x", got, want)
	}
}

func TestWritePCM_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		bitDepth int
		values   []int
		want     error
	}{
		{"zero channels", 0, 16, nil, ErrInvalidFormat},
		{"odd bit depth", 1, 12, nil, ErrUnsupportedBitDepth},
		{"partial frame", 2, 16, []int{1, 2, 3}, ErrFrameWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := WritePCM(&bytes.Buffer{}, 8000, tt.channels, tt.bitDepth, tt.values)
			if !errors.Is(err, tt.want) {
				t.Errorf("WritePCM() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWritePCM_LargeFile(t *testing.T) {
	t.Parallel()

	values := make([]int, 20000) // spans several write chunks
	for i := range values {
		values[i] = i % 1000
	}

	var buf bytes.Buffer
	if err := WritePCM(&buf, 8000, 1, 16, values); err != nil {
		t.Fatalf("WritePCM() error = %v", err)
	}

	data := buf.Bytes()[44:]
	for _, i := range []int{0, 8191, 8192, 19999} {
		if got := int16(binary.LittleEndian.Uint16(data[2*i:])); int(got) != values[i] {
			t.Errorf("value %d = %d, want %d", i, got, values[i])
		}
	}
}

func BenchmarkWritePCM(b *testing.B) {
	values := make([]int, 44100)

	b.ReportAllocs()

	for b.Loop() {
		var buf bytes.Buffer
		_ = WritePCM(&buf, 44100, 1, 16, values)
	}
}
