package stub

import (
	"encoding/binary"

	"github.com/nabto/clientapi"
)

// TunnelOpenTCP returns TunnelSentinel on success.
func (s *Stub) TunnelOpenTCP(
	session clientapi.SessionHandle,
	localPort int,
	nabtoHost, remoteHost string,
	remotePort int,
) (clientapi.TunnelHandle, clientapi.Status, error) {
	s.begin()
	s.recordSession(session)
	s.params.RecordInt("localPort", int64(localPort))
	s.params.Record("nabtoHost", nabtoHost)
	s.params.Record("remoteHost", remoteHost)
	s.params.RecordInt("remotePort", int64(remotePort))

	status, err := s.status(OpTunnelOpenTCP)
	if err != nil {
		return 0, 0, err
	}
	if !status.OK() {
		return 0, s.done(OpTunnelOpenTCP, status), nil
	}
	return clientapi.TunnelSentinel, s.done(OpTunnelOpenTCP, status), nil
}

// TunnelClose emulates nabtoTunnelClose.
func (s *Stub) TunnelClose(tunnel clientapi.TunnelHandle) (clientapi.Status, error) {
	s.begin()
	s.recordTunnel(tunnel)
	return s.simple(OpTunnelClose)
}

// TunnelInfo writes the canned value for selector into info in native byte
// order. Nothing is written unless the status is OK and len(info) equals
// selector.Size(); a size mismatch is silently ignored.
func (s *Stub) TunnelInfo(tunnel clientapi.TunnelHandle, selector clientapi.TunnelInfoSelector, info []byte) (clientapi.Status, error) {
	s.begin()
	s.recordTunnel(tunnel)

	status, err := s.status(OpTunnelInfo)
	if err != nil {
		return 0, err
	}
	// Silently ignore unknown selectors and size mismatches
	if !status.OK() || selector.Size() == 0 || len(info) != selector.Size() {
		return s.done(OpTunnelInfo, status), nil
	}

	var (
		state   = int32(CannedTunnelState)
		lastErr = CannedTunnelLastError
	)
	switch selector {
	case clientapi.TunnelInfoVersion:
		binary.NativeEndian.PutUint32(info, CannedTunnelVersion)
	case clientapi.TunnelInfoStatus:
		binary.NativeEndian.PutUint32(info, uint32(state))
	case clientapi.TunnelInfoLastError:
		binary.NativeEndian.PutUint32(info, uint32(lastErr))
	case clientapi.TunnelInfoPort:
		binary.NativeEndian.PutUint16(info, CannedTunnelPort)
	}
	return s.done(OpTunnelInfo, status), nil
}

func (s *Stub) recordTunnel(tunnel clientapi.TunnelHandle) {
	s.params.RecordUint("tunnelHandle", uint64(tunnel))
}
