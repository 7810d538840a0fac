// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/audsched/audio"
	"github.com/ik5/audsched/formats/internal/intpcm"
)

// Decoder reads AIFF files. AIFF stores signed big-endian PCM, so frames are
// S8, S16, S24 or S32 depending on the file's sample size.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, err := intpcm.ReadSeeker(r)
	if err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	// Read file info
	dec.ReadInfo()

	enc, err := intpcm.EncodingFor(int(dec.BitDepth), false)
	if err != nil {
		return nil, err
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 {
		return nil, ErrUnsupportedAiffLayout
	}

	return intpcm.New(dec, format, enc), nil
}
