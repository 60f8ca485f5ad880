package host

import (
	"errors"
	"fmt"
	"io"

	"github.com/nabto/clientapi"
	"github.com/nabto/clientapi/codec"
	"github.com/nabto/clientapi/controller"
	"github.com/nabto/clientapi/stub"
	"github.com/sirupsen/logrus"
	sdkproto "github.com/tarmac-project/protobuf-go/sdk"
	kvstore "github.com/tarmac-project/protobuf-go/sdk/kvstore"
)

// CapabilityClientAPI routes calls to the fake operations.
const CapabilityClientAPI = "clientapi"

var (
	// ErrUnexpectedNamespace is returned when the namespace is not the one
	// the Host serves.
	ErrUnexpectedNamespace = errors.New("unexpected namespace")

	// ErrUnexpectedCapability is returned for an unknown capability.
	ErrUnexpectedCapability = errors.New("unexpected capability")

	// ErrUnexpectedFunction is returned for an unknown function.
	ErrUnexpectedFunction = errors.New("unexpected function")

	// ErrInvalidArgument is returned when a call payload lacks an argument or
	// carries one of the wrong kind.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMarshalResponse wraps failures while encoding a response envelope.
	ErrMarshalResponse = errors.New("failed to marshal response")
)

// Config configures a Host.
type Config struct {
	// Namespace is the waPC namespace served. Defaults to
	// clientapi.DefaultNamespace.
	Namespace string

	// Stub runs the fake operations. A fresh Stub is created when nil.
	Stub *stub.Stub

	// Logger defaults to a logger that discards output.
	Logger logrus.FieldLogger
}

// Host answers waPC host calls from a guest by running them against a Stub.
type Host struct {
	namespace  string
	stub       *stub.Stub
	controller controller.Controller
	handlers   map[stub.Op]handler
	log        logrus.FieldLogger
}

// New creates a Host.
func New(cfg Config) (*Host, error) {
	// Default to a silent logger
	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	rc := clientapi.RuntimeConfig{Namespace: cfg.Namespace}.WithDefaults()

	// Use the provided Stub or create a fresh one
	s := cfg.Stub
	if s == nil {
		s = stub.New(stub.Config{Logger: log})
	}

	h := &Host{
		namespace:  rc.Namespace,
		stub:       s,
		controller: controller.New(s),
		log:        log.WithField("component", "host"),
	}
	h.handlers = h.table()

	return h, nil
}

// Stub returns the Stub the Host dispatches to.
func (h *Host) Stub() *stub.Stub { return h.stub }

// HostCall has the signature of a waPC host function.
func (h *Host) HostCall(namespace, capability, function string, payload []byte) ([]byte, error) {
	// Validate namespace
	if namespace != h.namespace {
		return nil, fmt.Errorf("%w: expected namespace %s, got %s", ErrUnexpectedNamespace, h.namespace, namespace)
	}

	// Route by capability
	switch capability {
	case controller.Capability:
		return h.control(function, payload)
	case CapabilityClientAPI:
		return h.dispatch(function, payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedCapability, capability)
	}
}

func (h *Host) control(function string, payload []byte) ([]byte, error) {
	switch function {
	case controller.FunctionSetReturnValues:
		h.controller.SetReturnValues(string(payload))
		return []byte{}, nil
	case controller.FunctionGetParameterValues:
		return []byte(h.controller.GetParameterValues()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedFunction, function)
	}
}

func (h *Host) dispatch(function string, payload []byte) ([]byte, error) {
	// Resolve the function to a routable op
	op, ok := stub.ParseOp(function)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedFunction, function)
	}
	fn, ok := h.handlers[op]
	if !ok {
		return nil, fmt.Errorf("%w: %s is not callable through the host", ErrUnexpectedFunction, function)
	}

	// The call counts as made once it names an op, so a payload rejected
	// below must not leave the previous call's inputs behind.
	h.stub.Parameters().Reset()

	// Decode arguments and run the fake
	status, out, err := fn(args(codec.Decode(string(payload))))
	if err != nil {
		h.log.WithField("op", op.String()).WithError(err).Debug("host call failed")
		return nil, err
	}

	// KVStoreGetResponse is borrowed as a generic status plus payload
	// envelope; no key/value store is involved.
	resp := &kvstore.KVStoreGetResponse{
		Status: &sdkproto.Status{Code: int32(status), Status: status.String()},
		Data:   []byte(codec.Encode(out)),
	}
	b, err := resp.MarshalVT()
	if err != nil {
		return nil, errors.Join(ErrMarshalResponse, err)
	}
	return b, nil
}
