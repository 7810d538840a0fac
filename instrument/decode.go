// SPDX-License-Identifier: EPL-2.0

package instrument

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/vmihailenco/msgpack/v5"
)

// Raw is a msgpack-encoded value, decoded lazily into the type an
// instrument expects.
type Raw []byte

// Encode serializes v so it can travel as an opaque event or argument.
func Encode(v any) (Raw, error) {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding %T: %w", v, err)
	}
	return Raw(b), nil
}

var errNilValue = errors.New("nil value")

// Decode converts an opaque value into T. Values already of type T (or *T)
// are used as is, Raw is unmarshaled, and anything else goes through a
// msgpack round trip, so maps and scalars from a YAML file or host script
// land in struct fields tagged `msgpack:"..."`.
func Decode[T any](v any) (T, error) {
	var out T

	switch x := v.(type) {
	case nil:
		return out, &DecodeError{Want: reflect.TypeFor[T](), Err: errNilValue}
	case T:
		return x, nil
	case *T:
		if x == nil {
			return out, &DecodeError{Want: reflect.TypeFor[T](), Err: errNilValue}
		}
		return *x, nil
	case Raw:
		if err := msgpack.Unmarshal(x, &out); err != nil {
			return out, &DecodeError{Want: reflect.TypeFor[T](), Err: err}
		}
		return out, nil
	}

	b, err := msgpack.Marshal(v)
	if err != nil {
		return out, &DecodeError{Want: reflect.TypeFor[T](), Err: err}
	}
	if err := msgpack.Unmarshal(b, &out); err != nil {
		return out, &DecodeError{Want: reflect.TypeFor[T](), Err: err}
	}
	return out, nil
}
