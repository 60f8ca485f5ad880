package controller

import (
	"github.com/nabto/clientapi/stub"
	wapc "github.com/wapc/wapc-guest-tinygo"
)

// Capability and function names used on the waPC boundary.
const (
	Capability = "controller"

	FunctionSetReturnValues    = "setReturnValues"
	FunctionGetParameterValues = "getParameterValues"
)

// Controller configures the fake and reads back what it captured.
type Controller interface {
	// SetReturnValues replaces the scripted outcomes with the encoded
	// key/value pairs in s.
	SetReturnValues(s string)

	// GetParameterValues returns the encoded inputs of the most recent fake
	// operation.
	GetParameterValues() string
}

type stubController struct {
	stub *stub.Stub
}

var _ Controller = (*stubController)(nil)

// New returns a Controller backed by s.
func New(s *stub.Stub) Controller {
	return &stubController{stub: s}
}

func (c *stubController) SetReturnValues(s string) {
	c.stub.ReturnValues().Configure(s)
}

func (c *stubController) GetParameterValues() string {
	return c.stub.Parameters().Snapshot()
}

// Functions returns the waPC guest functions serving c, keyed by function
// name. Payloads and responses are raw encoded text.
func Functions(c Controller) wapc.Functions {
	return wapc.Functions{
		FunctionSetReturnValues: func(payload []byte) ([]byte, error) {
			c.SetReturnValues(string(payload))
			return []byte{}, nil
		},
		FunctionGetParameterValues: func(_ []byte) ([]byte, error) {
			return []byte(c.GetParameterValues()), nil
		},
	}
}

// Register exports c as the waPC guest functions setReturnValues and
// getParameterValues. A later Register replaces an earlier one.
func Register(c Controller) {
	wapc.RegisterFunctions(Functions(c))
}
