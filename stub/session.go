package stub

import (
	"bytes"

	"github.com/nabto/clientapi"
)

// RPCResult is the outcome of an RPC call. JSON is nil unless the call
// produced a response or an error detail; when set, the caller must Free it.
type RPCResult struct {
	Status clientapi.Status
	JSON   *Buffer
}

// URLResult is the outcome of FetchURL and SubmitPostData. Both buffers are
// set together on success and must each be freed by the caller.
type URLResult struct {
	Status   clientapi.Status
	Result   *Buffer
	MimeType *Buffer
}

// OpenSession returns SessionSentinel on success.
func (s *Stub) OpenSession(id, password string) (clientapi.SessionHandle, clientapi.Status, error) {
	s.begin()
	s.params.Record("id", id)
	s.params.Record("password", password)
	return s.openSession(OpOpenSession)
}

// OpenSessionBare returns SessionSentinel on success.
func (s *Stub) OpenSessionBare() (clientapi.SessionHandle, clientapi.Status, error) {
	s.begin()
	return s.openSession(OpOpenSessionBare)
}

func (s *Stub) openSession(op Op) (clientapi.SessionHandle, clientapi.Status, error) {
	status, err := s.status(op)
	if err != nil {
		return 0, 0, err
	}
	if !status.OK() {
		return 0, s.done(op, status), nil
	}
	return clientapi.SessionSentinel, s.done(op, status), nil
}

// CloseSession emulates nabtoCloseSession.
func (s *Stub) CloseSession(session clientapi.SessionHandle) (clientapi.Status, error) {
	s.begin()
	s.recordSession(session)
	return s.simple(OpCloseSession)
}

// SetBasestationAuthJSON emulates nabtoSetBasestationAuthJson.
func (s *Stub) SetBasestationAuthJSON(session clientapi.SessionHandle, jsonKeyValuePairs string) (clientapi.Status, error) {
	s.begin()
	s.recordSession(session)
	s.params.Record("jsonKeyValuePairs", jsonKeyValuePairs)
	return s.simple(OpSetBasestationAuthJSON)
}

// RPCSetDefaultInterface emulates nabtoRpcSetDefaultInterface. An error
// detail is returned only for StatusFailedWithJSONMessage.
func (s *Stub) RPCSetDefaultInterface(session clientapi.SessionHandle, interfaceDefinition string) (RPCResult, error) {
	s.begin()
	s.recordSession(session)
	s.params.Record("interfaceDefinition", interfaceDefinition)
	return s.rpcDetail(OpRPCSetDefaultInterface)
}

// RPCSetInterface emulates nabtoRpcSetInterface. An error detail is returned
// only for StatusFailedWithJSONMessage.
func (s *Stub) RPCSetInterface(session clientapi.SessionHandle, host, interfaceDefinition string) (RPCResult, error) {
	s.begin()
	s.recordSession(session)
	s.params.Record("host", host)
	s.params.Record("interfaceDefinition", interfaceDefinition)
	return s.rpcDetail(OpRPCSetInterface)
}

func (s *Stub) rpcDetail(op Op) (RPCResult, error) {
	status, err := s.status(op)
	if err != nil {
		return RPCResult{}, err
	}
	res := RPCResult{Status: s.done(op, status)}
	if status.HasJSONDetail() {
		res.JSON = newBuffer(CannedErrorDetail)
	}
	return res, nil
}

// RPCInvoke emulates nabtoRpcInvoke. On success JSON holds the canned
// response; for StatusFailedWithJSONMessage it holds the canned error detail.
func (s *Stub) RPCInvoke(session clientapi.SessionHandle, nabtoURL string) (RPCResult, error) {
	s.begin()
	s.recordSession(session)
	s.params.Record("nabtoUrl", nabtoURL)

	status, err := s.status(OpRPCInvoke)
	if err != nil {
		return RPCResult{}, err
	}
	// Pick the payload matching the status
	res := RPCResult{Status: s.done(OpRPCInvoke, status)}
	switch {
	case status.OK():
		res.JSON = newBuffer(CannedJSON)
	case status.HasJSONDetail():
		res.JSON = newBuffer(CannedErrorDetail)
	}
	return res, nil
}

// FetchURL emulates nabtoFetchUrl.
func (s *Stub) FetchURL(session clientapi.SessionHandle, nabtoURL string) (URLResult, error) {
	s.begin()
	s.recordSession(session)
	s.params.Record("nabtoUrl", nabtoURL)
	return s.urlResult(OpFetchURL)
}

// SubmitPostData emulates nabtoSubmitPostData.
func (s *Stub) SubmitPostData(session clientapi.SessionHandle, nabtoURL string, data []byte, mimeType string) (URLResult, error) {
	s.begin()
	s.recordSession(session)
	s.params.Record("nabtoUrl", nabtoURL)
	s.params.RecordBytes("postBuffer", data)
	s.params.RecordInt("postLen", int64(len(data)))
	s.params.Record("postMimeType", mimeType)
	return s.urlResult(OpSubmitPostData)
}

func (s *Stub) urlResult(op Op) (URLResult, error) {
	status, err := s.status(op)
	if err != nil {
		return URLResult{}, err
	}
	res := URLResult{Status: s.done(op, status)}
	if status.OK() {
		res.Result = newBuffer(CannedContent)
		res.MimeType = newBuffer(CannedMimeType)
	}
	return res, nil
}

// GetSessionToken writes the canned token into buf and returns its length.
// The token is written only on success and only when buf is exactly
// SessionTokenBufferSize bytes; otherwise the call behaves as if no token
// were available and returns length 0.
func (s *Stub) GetSessionToken(session clientapi.SessionHandle, buf []byte) (int, clientapi.Status, error) {
	s.begin()
	s.recordSession(session)
	s.params.RecordInt("bufLen", int64(len(buf)))

	status, err := s.status(OpGetSessionToken)
	if err != nil {
		return 0, 0, err
	}

	// Only a buffer of exactly the token size plus terminator is filled
	if !status.OK() || len(buf) != SessionTokenBufferSize {
		return 0, s.done(OpGetSessionToken, status), nil
	}
	copy(buf, bytes.Repeat([]byte{'x'}, SessionTokenLength))
	return SessionTokenLength, s.done(OpGetSessionToken, status), nil
}

func (s *Stub) recordSession(session clientapi.SessionHandle) {
	s.params.RecordUint("sessionHandle", uint64(session))
}
