// SPDX-License-Identifier: EPL-2.0

package pattern

import "errors"

var (
	ErrNoParseTable = errors.New("pattern: parser has no parse table")
	ErrEmptyTrigger = errors.New("pattern: empty trigger")
	ErrNilTable     = errors.New("pattern: nil parse table")
	ErrInvalidNote  = errors.New("pattern: invalid note")
)
