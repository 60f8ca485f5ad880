package store

import (
	"strconv"

	"github.com/nabto/clientapi/codec"
)

// Parameters captures the inputs of the last fake operation.
type Parameters struct {
	values map[string]string
}

// NewParameters creates an empty capture store.
func NewParameters() *Parameters {
	return &Parameters{values: make(map[string]string)}
}

// Reset clears all captured entries.
func (p *Parameters) Reset() {
	clear(p.values)
}

// Record stores value under key, overwriting any earlier entry.
func (p *Parameters) Record(key, value string) {
	p.values[key] = value
}

// RecordInt records the decimal form of v.
func (p *Parameters) RecordInt(key string, v int64) {
	p.values[key] = strconv.FormatInt(v, 10)
}

// RecordUint records the decimal form of v.
func (p *Parameters) RecordUint(key string, v uint64) {
	p.values[key] = strconv.FormatUint(v, 10)
}

// RecordBytes records b as text.
func (p *Parameters) RecordBytes(key string, b []byte) {
	p.values[key] = string(b)
}

// Get returns the captured value for key.
func (p *Parameters) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Len returns the number of captured entries.
func (p *Parameters) Len() int { return len(p.values) }

// Values returns a copy of the captured entries.
func (p *Parameters) Values() map[string]string {
	out := make(map[string]string, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Snapshot encodes the captured entries for transmission across the boundary.
func (p *Parameters) Snapshot() string {
	return codec.Encode(p.values)
}
