package stub

import (
	"errors"
	"fmt"
	"io"

	"github.com/nabto/clientapi"
	"github.com/nabto/clientapi/store"
	"github.com/sirupsen/logrus"
)

// Configuration keys read from the return-value store.
const (
	KeyStatus             = "status"
	KeyPrefixesLength     = "prefixesLength"
	KeyNumberOfDevices    = "numberOfDevices"
	KeyCertificatesLength = "certificatesLength"
)

// Canned outputs produced on success.
const (
	VersionMajor = 11
	VersionMinor = 22

	CannedJSON         = "json"
	CannedErrorDetail  = "error"
	CannedContent      = "content"
	CannedMimeType     = "mime type"
	CannedStreamData   = "data"
	CannedProfileEmail = "profile@nabto.com"

	// SessionTokenBufferSize is the only buffer capacity GetSessionToken fills.
	SessionTokenBufferSize = 65
	// SessionTokenLength is the length of the canned token.
	SessionTokenLength = 64

	// FingerprintSize is the fingerprint buffer size GetFingerprint fills.
	FingerprintSize = 16

	CannedTunnelVersion   uint32                = 123
	CannedTunnelState     clientapi.TunnelState = clientapi.TunnelRemoteRelay
	CannedTunnelLastError int32                 = -123
	CannedTunnelPort      uint16                = 234

	// DefaultHomeDir is recorded by Startup when no home directory is given.
	DefaultHomeDir = "default"
)

// Prefixes of the synthetic list items; item i is prefix followed by i.
const (
	prefixProtocol    = "p"
	prefixDevice      = "d"
	prefixCertificate = "c"
)

// Config configures a Stub.
type Config struct {
	// Logger receives a debug entry per fake operation. Defaults to a logger
	// that discards output.
	Logger logrus.FieldLogger
}

// Stub is a scriptable replacement for the native client library. It owns a
// return-value store that prescribes outcomes and a parameter-capture store
// that records what callers passed in.
//
// A Stub is meant for sequential use: configure, invoke one operation,
// inspect the captured parameters, repeat. Separate Stub values share no
// state.
type Stub struct {
	returns *store.ReturnValues
	params  *store.Parameters
	log     logrus.FieldLogger
}

// New creates a Stub with empty stores.
func New(cfg Config) *Stub {
	// Default to a silent logger
	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &Stub{
		returns: store.NewReturnValues(),
		params:  store.NewParameters(),
		log:     log.WithField("component", "stub"),
	}
}

// ReturnValues exposes the return-value store.
func (s *Stub) ReturnValues() *store.ReturnValues { return s.returns }

// Parameters exposes the parameter-capture store.
func (s *Stub) Parameters() *store.Parameters { return s.params }

// begin starts a fake operation by clearing the previous call's inputs.
func (s *Stub) begin() {
	s.params.Reset()
}

// status reads the configured status.
func (s *Stub) status(op Op) (clientapi.Status, error) {
	n, err := s.returns.Int(KeyStatus)
	if err != nil {
		return 0, s.misconfigured(op, err)
	}
	return clientapi.Status(n), nil
}

// count reads a non-negative list length.
func (s *Stub) count(op Op, key string) (int, error) {
	n, err := s.returns.Int(key)
	if err != nil {
		return 0, s.misconfigured(op, err)
	}
	if n < 0 {
		return 0, s.misconfigured(op, fmt.Errorf("key %q: %w: negative length %d", key, store.ErrInvalidValue, n))
	}
	return n, nil
}

// misconfigured logs and wraps a configuration error for op.
func (s *Stub) misconfigured(op Op, err error) error {
	s.log.WithField("op", op.String()).WithError(err).Warn("fake operation aborted")
	return fmt.Errorf("%s: %w", op, err)
}

// done logs the outcome of op and passes status through.
func (s *Stub) done(op Op, status clientapi.Status) clientapi.Status {
	s.log.WithFields(logrus.Fields{
		"op":     op.String(),
		"status": status.String(),
	}).Debug("fake operation completed")
	return status
}

// simple runs an operation whose only output is the configured status.
func (s *Stub) simple(op Op) (clientapi.Status, error) {
	status, err := s.status(op)
	if err != nil {
		return 0, err
	}
	return s.done(op, status), nil
}

// Free releases a buffer returned by a fake operation. It does not touch
// either store, so the parameters of the call that produced the buffer stay
// inspectable afterwards. Freeing nil is a no-op; freeing twice reports
// StatusIllegalParameter.
func (s *Stub) Free(b *Buffer) clientapi.Status {
	if b == nil {
		return clientapi.StatusOK
	}

	// Reject double free
	if b.freed {
		s.log.WithField("op", OpFree.String()).Warn("buffer freed twice")
		return clientapi.StatusIllegalParameter
	}
	b.freed = true
	b.data = nil
	return clientapi.StatusOK
}

// IsMisconfigured reports whether err was caused by missing or unreadable
// configuration rather than by the fake itself.
func IsMisconfigured(err error) bool {
	return errors.Is(err, store.ErrMissingKey) || errors.Is(err, store.ErrInvalidValue)
}
