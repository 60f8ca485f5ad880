package store

import (
	"fmt"
	"strconv"
)

// Kind classifies a configured value.
type Kind int

const (
	// KindText is any value that is not a base-10 integer.
	KindText Kind = iota
	// KindInt is a value that parses as a base-10 integer, such as a status
	// code, an enum ordinal or a list length.
	KindInt
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	default:
		return "text"
	}
}

// Value is a configured value, classified when it enters the store. The
// original text is always kept.
type Value struct {
	kind Kind
	text string
	num  int64
}

// ParseValue classifies s.
func ParseValue(s string) Value {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Value{kind: KindInt, text: s, num: n}
	}
	return Value{kind: KindText, text: s}
}

// Kind returns the classification of the value.
func (v Value) Kind() Kind { return v.kind }

// Text returns the value as configured.
func (v Value) Text() string { return v.text }

// Bytes returns the configured text as a byte sequence.
func (v Value) Bytes() []byte { return []byte(v.text) }

// Int returns the integer form of the value.
func (v Value) Int() (int64, error) {
	if v.kind != KindInt {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, v.text)
	}
	return v.num, nil
}
