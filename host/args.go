package host

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/nabto/clientapi"
	"github.com/nabto/clientapi/store"
)

// reader pulls typed arguments out of a decoded payload. Failures are
// collected so a handler can read every argument and check once.
type reader struct {
	values map[string]string
	err    error
}

func args(values map[string]string) *reader {
	return &reader{values: values}
}

func (r *reader) fail(key, format string, a ...any) {
	r.err = errors.Join(r.err, fmt.Errorf("%w %q: %s", ErrInvalidArgument, key, fmt.Sprintf(format, a...)))
}

func (r *reader) text(key string) string {
	v, ok := r.values[key]
	if !ok {
		r.fail(key, "missing")
	}
	return v
}

func (r *reader) bytes(key string) []byte {
	return []byte(r.text(key))
}

func (r *reader) integer(key string) int64 {
	v, ok := r.values[key]
	if !ok {
		r.fail(key, "missing")
		return 0
	}
	n, err := store.ParseValue(v).Int()
	if err != nil {
		r.fail(key, "not an integer")
		return 0
	}
	return n
}

func (r *reader) unsigned(key string) uint64 {
	v, ok := r.values[key]
	if !ok {
		r.fail(key, "missing")
		return 0
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		r.fail(key, "not an unsigned integer")
		return 0
	}
	return n
}

// size reads a buffer length in [0, maxBufferSize].
func (r *reader) size(key string) int {
	n := r.integer(key)
	if n < 0 || n > maxBufferSize {
		r.fail(key, "length %d out of range", n)
		return 0
	}
	return int(n)
}

func (r *reader) sessionHandle() clientapi.SessionHandle {
	return clientapi.SessionHandle(r.unsigned("sessionHandle"))
}

func (r *reader) streamHandle() clientapi.StreamHandle {
	return clientapi.StreamHandle(r.unsigned("streamHandle"))
}

func (r *reader) tunnelHandle() clientapi.TunnelHandle {
	return clientapi.TunnelHandle(r.unsigned("tunnelHandle"))
}

func (r *reader) Err() error {
	return r.err
}
