package clientapi

// DefaultNamespace is used when no explicit namespace is provided.
const DefaultNamespace = "nabto"

// RuntimeConfig carries configuration shared by the boundary components.
type RuntimeConfig struct {
	// Namespace is the waPC namespace used to scope host interactions.
	Namespace string
}

// WithDefaults returns a copy of the configuration with empty fields filled in.
func (c RuntimeConfig) WithDefaults() RuntimeConfig {
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}
	return c
}

// SessionHandle identifies an open session.
type SessionHandle uint64

// StreamHandle identifies an open stream.
type StreamHandle uint64

// TunnelHandle identifies an open tunnel.
type TunnelHandle uint64

// Sentinel handle values returned by successful open operations. Handles are
// never allocated, so the same value is always returned for the same kind.
const (
	SessionSentinel SessionHandle = 42
	StreamSentinel  StreamHandle  = 43
	TunnelSentinel  TunnelHandle  = 44
)
