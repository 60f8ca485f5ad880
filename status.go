package clientapi

import "strconv"

// Status is the result code returned by every native entry point.
type Status int32

// Status values, numbered as in the native library.
const (
	StatusOK                          Status = 0
	StatusNoProfile                   Status = 1
	StatusErrorReadingConfig          Status = 2
	StatusAPINotInitialized           Status = 3
	StatusInvalidSession              Status = 4
	StatusOpenCertOrPKFailed          Status = 5
	StatusUnlockPKFailed              Status = 6
	StatusPortalLoginFailure          Status = 7
	StatusCertSigningError            Status = 8
	StatusCertSavingFailure           Status = 9
	StatusAddressInUse                Status = 10
	StatusInvalidAddress              Status = 11
	StatusNoNetwork                   Status = 12
	StatusConnectToHostFailed         Status = 13
	StatusStreamingUnsupported        Status = 14
	StatusInvalidStream               Status = 15
	StatusDataPending                 Status = 16
	StatusBufferFull                  Status = 17
	StatusFailed                      Status = 18
	StatusInvalidTunnel               Status = 19
	StatusIllegalParameter            Status = 20
	StatusInvalidResource             Status = 21
	StatusInvalidStreamOption         Status = 22
	StatusInvalidStreamOptionArgument Status = 23
	StatusAborted                     Status = 24
	StatusStreamClosed                Status = 25
	StatusFailedWithJSONMessage       Status = 26
	StatusConnectTimeout              Status = 27
)

var statusNames = [...]string{
	"OK",
	"NO_PROFILE",
	"ERROR_READING_CONFIG",
	"API_NOT_INITIALIZED",
	"INVALID_SESSION",
	"OPEN_CERT_OR_PK_FAILED",
	"UNLOCK_PK_FAILED",
	"PORTAL_LOGIN_FAILURE",
	"CERT_SIGNING_ERROR",
	"CERT_SAVING_FAILURE",
	"ADDRESS_IN_USE",
	"INVALID_ADDRESS",
	"NO_NETWORK",
	"CONNECT_TO_HOST_FAILED",
	"STREAMING_UNSUPPORTED",
	"INVALID_STREAM",
	"DATA_PENDING",
	"BUFFER_FULL",
	"FAILED",
	"INVALID_TUNNEL",
	"ILLEGAL_PARAMETER",
	"INVALID_RESOURCE",
	"INVALID_STREAM_OPTION",
	"INVALID_STREAM_OPTION_ARGUMENT",
	"ABORTED",
	"STREAM_CLOSED",
	"FAILED_WITH_JSON_MESSAGE",
	"CONNECT_TIMEOUT",
}

// String returns the symbolic name of the status.
func (s Status) String() string {
	if s.Known() {
		return statusNames[s]
	}
	return "UNKNOWN_STATUS(" + strconv.Itoa(int(s)) + ")"
}

// Known reports whether s is one of the defined status values.
func (s Status) Known() bool {
	return s >= 0 && int(s) < len(statusNames)
}

// OK reports whether s signals success.
func (s Status) OK() bool { return s == StatusOK }

// HasJSONDetail reports whether the native contract attaches a JSON error
// detail for this status.
func (s Status) HasJSONDetail() bool { return s == StatusFailedWithJSONMessage }

// ConnectionType is the underlying connection of a stream.
type ConnectionType int32

const (
	ConnectionLocal      ConnectionType = 0
	ConnectionP2P        ConnectionType = 1
	ConnectionRelay      ConnectionType = 2
	ConnectionUnknown    ConnectionType = 3
	ConnectionRelayMicro ConnectionType = 4
)

func (c ConnectionType) String() string {
	switch c {
	case ConnectionLocal:
		return "LOCAL"
	case ConnectionP2P:
		return "P2P"
	case ConnectionRelay:
		return "RELAY"
	case ConnectionRelayMicro:
		return "RELAY_MICRO"
	default:
		return "UNKNOWN"
	}
}

// StreamOption selects a stream option for StreamSetOption.
type StreamOption int32

const (
	StreamOptionReceiveTimeout StreamOption = 1
	StreamOptionSendTimeout    StreamOption = 2
)

// TunnelInfoSelector picks the field queried by TunnelInfo.
type TunnelInfoSelector int32

const (
	TunnelInfoVersion   TunnelInfoSelector = 0
	TunnelInfoStatus    TunnelInfoSelector = 1
	TunnelInfoLastError TunnelInfoSelector = 2
	TunnelInfoPort      TunnelInfoSelector = 3
)

// Size returns the byte size the native contract expects for the selector's
// output, or 0 for an unknown selector.
func (s TunnelInfoSelector) Size() int {
	switch s {
	case TunnelInfoVersion, TunnelInfoStatus, TunnelInfoLastError:
		return 4
	case TunnelInfoPort:
		return 2
	default:
		return 0
	}
}

// TunnelState is the connection state of a tunnel.
type TunnelState int32

const (
	TunnelClosed            TunnelState = -1
	TunnelConnecting        TunnelState = 0
	TunnelReadyForReconnect TunnelState = 1
	TunnelUnknown           TunnelState = 2
	TunnelLocal             TunnelState = 3
	TunnelRemoteP2P         TunnelState = 4
	TunnelRemoteRelay       TunnelState = 5
	TunnelRemoteRelayMicro  TunnelState = 6
)
