package controller

import (
	"errors"
	"io"

	"github.com/nabto/clientapi"
	"github.com/nabto/clientapi/codec"
	"github.com/sirupsen/logrus"
	wapc "github.com/wapc/wapc-guest-tinygo"
)

// Config configures a Client.
//
// SDKConfig supplies the namespace used for waPC host calls and defaults to
// clientapi.DefaultNamespace. HostCall lets tests inject a host function;
// when nil, the client uses wapc.HostCall.
type Config struct {
	// SDKConfig provides the runtime namespace for host calls.
	SDKConfig clientapi.RuntimeConfig
	// HostCall overrides the waPC host function.
	HostCall func(string, string, string, []byte) ([]byte, error)
	// Logger receives host call failures swallowed by the Controller
	// methods. Defaults to a logger that discards output.
	Logger logrus.FieldLogger
}

// Client drives a fake running on the waPC host.
type Client struct {
	cfg      Config
	hostCall func(string, string, string, []byte) ([]byte, error)
	log      logrus.FieldLogger
}

var _ Controller = (*Client)(nil)

// NewClient creates a Client. The Controller methods cannot return errors,
// so they log host failures at error level; use Configure and Parameters to
// handle them directly.
func NewClient(cfg Config) (*Client, error) {
	c := &Client{cfg: cfg}

	// Set default namespace if not provided
	c.cfg.SDKConfig = cfg.SDKConfig.WithDefaults()

	// Set HostCall function if provided
	c.hostCall = wapc.HostCall
	if cfg.HostCall != nil {
		c.hostCall = cfg.HostCall
	}

	log := cfg.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	c.log = log.WithFields(logrus.Fields{
		"component": "controller",
		"namespace": c.cfg.SDKConfig.Namespace,
	})

	return c, nil
}

// Configure sends the encoded return values to the host.
func (c *Client) Configure(s string) error {
	if _, err := c.hostCall(c.cfg.SDKConfig.Namespace, Capability, FunctionSetReturnValues, []byte(s)); err != nil {
		return errors.Join(clientapi.ErrHostCall, err)
	}
	return nil
}

// Parameters fetches the encoded parameters captured by the host.
func (c *Client) Parameters() (string, error) {
	b, err := c.hostCall(c.cfg.SDKConfig.Namespace, Capability, FunctionGetParameterValues, []byte{})
	if err != nil {
		return "", errors.Join(clientapi.ErrHostCall, err)
	}
	return string(b), nil
}

// SetReturnValues implements Controller. A failed host call is logged and
// leaves the host's previous configuration in place.
func (c *Client) SetReturnValues(s string) {
	if err := c.Configure(s); err != nil {
		c.log.WithField("function", FunctionSetReturnValues).WithError(err).Error("return values not applied")
	}
}

// GetParameterValues implements Controller. It logs a failed host call and
// returns an empty encoding.
func (c *Client) GetParameterValues() string {
	s, err := c.Parameters()
	if err != nil {
		c.log.WithField("function", FunctionGetParameterValues).WithError(err).Error("parameter values unavailable")
		return ""
	}
	return s
}

// SetReturnValueMap encodes m and sends it to the host.
func (c *Client) SetReturnValueMap(m map[string]string) error {
	return c.Configure(codec.Encode(m))
}

// ParameterValueMap fetches and decodes the captured parameters.
func (c *Client) ParameterValueMap() (map[string]string, error) {
	s, err := c.Parameters()
	if err != nil {
		return nil, err
	}
	return codec.Decode(s), nil
}
