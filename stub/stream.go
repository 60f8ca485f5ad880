package stub

import "github.com/nabto/clientapi"

// StreamReadResult is the outcome of StreamRead. Data is set only on success
// and must be freed by the caller.
type StreamReadResult struct {
	Status clientapi.Status
	Data   *Buffer
}

// StreamOpen returns StreamSentinel on success.
func (s *Stub) StreamOpen(session clientapi.SessionHandle, serverID string) (clientapi.StreamHandle, clientapi.Status, error) {
	s.begin()
	s.recordSession(session)
	s.params.Record("serverId", serverID)

	status, err := s.status(OpStreamOpen)
	if err != nil {
		return 0, 0, err
	}
	if !status.OK() {
		return 0, s.done(OpStreamOpen, status), nil
	}
	return clientapi.StreamSentinel, s.done(OpStreamOpen, status), nil
}

// StreamClose emulates nabtoStreamClose.
func (s *Stub) StreamClose(stream clientapi.StreamHandle) (clientapi.Status, error) {
	s.begin()
	s.recordStream(stream)
	return s.simple(OpStreamClose)
}

// StreamRead returns a caller-owned buffer with the canned stream data.
func (s *Stub) StreamRead(stream clientapi.StreamHandle) (StreamReadResult, error) {
	s.begin()
	s.recordStream(stream)

	status, err := s.status(OpStreamRead)
	if err != nil {
		return StreamReadResult{}, err
	}
	res := StreamReadResult{Status: s.done(OpStreamRead, status)}
	if status.OK() {
		res.Data = newBuffer(CannedStreamData)
	}
	return res, nil
}

// StreamReadIntoBuf copies the canned stream data into buf, truncated to its
// size, and returns the number of bytes written.
func (s *Stub) StreamReadIntoBuf(stream clientapi.StreamHandle, buf []byte) (int, clientapi.Status, error) {
	s.begin()
	s.recordStream(stream)
	s.params.RecordInt("bufLen", int64(len(buf)))

	status, err := s.status(OpStreamReadIntoBuf)
	if err != nil {
		return 0, 0, err
	}
	if !status.OK() {
		return 0, s.done(OpStreamReadIntoBuf, status), nil
	}
	n := copy(buf, CannedStreamData)
	return n, s.done(OpStreamReadIntoBuf, status), nil
}

// StreamWrite emulates nabtoStreamWrite.
func (s *Stub) StreamWrite(stream clientapi.StreamHandle, data []byte) (clientapi.Status, error) {
	s.begin()
	s.recordStream(stream)
	s.params.RecordBytes("buf", data)
	s.params.RecordInt("len", int64(len(data)))
	return s.simple(OpStreamWrite)
}

// StreamConnectionType reports ConnectionP2P on success and
// ConnectionUnknown otherwise.
func (s *Stub) StreamConnectionType(stream clientapi.StreamHandle) (clientapi.ConnectionType, clientapi.Status, error) {
	s.begin()
	s.recordStream(stream)

	status, err := s.status(OpStreamConnectionType)
	if err != nil {
		return clientapi.ConnectionUnknown, 0, err
	}
	if !status.OK() {
		return clientapi.ConnectionUnknown, s.done(OpStreamConnectionType, status), nil
	}
	return clientapi.ConnectionP2P, s.done(OpStreamConnectionType, status), nil
}

// StreamSetOption emulates nabtoStreamSetOption.
func (s *Stub) StreamSetOption(stream clientapi.StreamHandle, option clientapi.StreamOption, value []byte) (clientapi.Status, error) {
	s.begin()
	s.recordStream(stream)
	s.params.RecordInt("optionName", int64(option))
	s.params.RecordBytes("optionValue", value)
	s.params.RecordInt("optionLength", int64(len(value)))
	return s.simple(OpStreamSetOption)
}

func (s *Stub) recordStream(stream clientapi.StreamHandle) {
	s.params.RecordUint("streamHandle", uint64(stream))
}
