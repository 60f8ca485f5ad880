package store

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/nabto/clientapi/codec"
)

var (
	// ErrMissingKey is returned when a fake operation looks up a key the
	// test did not configure.
	ErrMissingKey = errors.New("missing configuration key")

	// ErrInvalidValue is returned when a configured value cannot be read as
	// the type an operation needs.
	ErrInvalidValue = errors.New("invalid configuration value")
)

// ReturnValues holds the configured outcome of the next fake operation.
type ReturnValues struct {
	values map[string]Value
}

// NewReturnValues creates an empty store.
func NewReturnValues() *ReturnValues {
	return &ReturnValues{values: make(map[string]Value)}
}

// Configure replaces the whole store with the decoded content of encoded.
// Malformed input leaves the store empty.
func (r *ReturnValues) Configure(encoded string) {
	decoded := codec.Decode(encoded)
	values := make(map[string]Value, len(decoded))
	for k, v := range decoded {
		values[k] = ParseValue(v)
	}
	r.values = values
}

// Lookup returns the value configured for key.
func (r *ReturnValues) Lookup(key string) (Value, error) {
	v, ok := r.values[key]
	if !ok {
		return Value{}, fmt.Errorf("%w: %q", ErrMissingKey, key)
	}
	return v, nil
}

// Int returns the value configured for key as an int.
func (r *ReturnValues) Int(key string) (int, error) {
	v, err := r.Lookup(key)
	if err != nil {
		return 0, err
	}
	n, err := v.Int()
	if err != nil {
		return 0, fmt.Errorf("key %q: %w", key, err)
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("key %q: %w: %d out of range", key, ErrInvalidValue, n)
	}
	return int(n), nil
}

// Text returns the value configured for key as text.
func (r *ReturnValues) Text(key string) (string, error) {
	v, err := r.Lookup(key)
	if err != nil {
		return "", err
	}
	return v.Text(), nil
}

// Len returns the number of configured keys.
func (r *ReturnValues) Len() int { return len(r.values) }

// Keys returns the configured keys in lexical order.
func (r *ReturnValues) Keys() []string {
	keys := make([]string, 0, len(r.values))
	for k := range r.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
