// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WritePCM writes a complete integer PCM WAV file holding the interleaved
// values. 8-bit values are written as unsigned bytes; wider depths as
// little-endian two's complement.
func WritePCM(w io.Writer, sampleRate, channels, bitDepth int, values []int) error {
	if sampleRate < 1 || channels < 1 {
		return ErrInvalidFormat
	}
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if len(values)%channels != 0 {
		return fmt.Errorf("%w: %d values for %d channels", ErrFrameWidth, len(values), channels)
	}

	width := bitDepth / 8
	blockAlign := channels * width
	dataSize := uint32(len(values) * width)

	header := make([]byte, 44)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(channels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate*blockAlign))
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(header[34:36], uint16(bitDepth))

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}
	if len(values) == 0 {
		return nil
	}

	// Write 8KB of samples at a time
	const chunkSize = 8192
	buf := make([]byte, 0, min(len(values), chunkSize)*width)

	for i := 0; i < len(values); i += chunkSize {
		buf = buf[:0]
		for _, v := range values[i:min(i+chunkSize, len(values))] {
			buf = appendValue(buf, v, bitDepth)
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

func appendValue(buf []byte, v, bitDepth int) []byte {
	switch bitDepth {
	case 8:
		return append(buf, uint8(v))
	case 16:
		return binary.LittleEndian.AppendUint16(buf, uint16(v))
	case 24:
		return append(buf, byte(v), byte(v>>8), byte(v>>16))
	default:
		return binary.LittleEndian.AppendUint32(buf, uint32(v))
	}
}
