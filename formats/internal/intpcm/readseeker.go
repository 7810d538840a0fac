// SPDX-License-Identifier: EPL-2.0

package intpcm

import (
	"bytes"
	"fmt"
	"io"
)

// ReadSeeker returns r when it can seek; otherwise it buffers r in memory,
// since the go-audio decoders need random access to the chunk layout.
func ReadSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("buffering input: %w", err)
	}
	return bytes.NewReader(data), nil
}
