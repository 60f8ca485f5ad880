package clientapi

import "errors"

// ErrHostCall wraps any failure reported by the waPC host function, whether
// from routing, argument validation or the fake operation itself.
var ErrHostCall = errors.New("nabto host call failed")
