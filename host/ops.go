package host

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"

	"github.com/nabto/clientapi"
	"github.com/nabto/clientapi/stub"
)

// Output keys of the clientapi capability.
const (
	OutMajor          = "major"
	OutMinor          = "minor"
	OutCount          = "count"
	OutItemPrefix     = "item"
	OutEmail          = "email"
	OutFingerprint    = "fingerprint"
	OutSessionHandle  = "sessionHandle"
	OutStreamHandle   = "streamHandle"
	OutTunnelHandle   = "tunnelHandle"
	OutJSON           = "json"
	OutResult         = "result"
	OutMimeType       = "mimeType"
	OutSessionToken   = "sessionToken"
	OutData           = "data"
	OutConnectionType = "connectionType"
	OutInfo           = "info"
)

// maxBufferSize bounds caller-sized buffers requested through the host.
const maxBufferSize = 1 << 20

type handler func(r *reader) (clientapi.Status, map[string]string, error)

// table maps every op reachable through the host to its handler. nabtoFree
// is absent: the host frees returned buffers itself.
func (h *Host) table() map[stub.Op]handler {
	s := h.stub
	return map[stub.Op]handler{
		stub.OpVersion: func(_ *reader) (clientapi.Status, map[string]string, error) {
			major, minor, status := s.Version()
			return status, map[string]string{
				OutMajor: strconv.Itoa(major),
				OutMinor: strconv.Itoa(minor),
			}, nil
		},
		stub.OpStartup: func(r *reader) (clientapi.Status, map[string]string, error) {
			// absent means the default home directory
			return statusOnly(s.Startup(r.values["nabtoHomeDir"]))
		},
		stub.OpShutdown: func(_ *reader) (clientapi.Status, map[string]string, error) {
			return s.Shutdown(), nil, nil
		},
		stub.OpSetApplicationName: func(r *reader) (clientapi.Status, map[string]string, error) {
			name := r.text("applicationName")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return statusOnly(s.SetApplicationName(name))
		},
		stub.OpSetStaticResourceDir: func(r *reader) (clientapi.Status, map[string]string, error) {
			dir := r.text("resourceDir")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return s.SetStaticResourceDir(dir), nil, nil
		},
		stub.OpInstallDefaultStaticResources: func(r *reader) (clientapi.Status, map[string]string, error) {
			dir := r.text("resourceDir")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return statusOnly(s.InstallDefaultStaticResources(dir))
		},
		stub.OpSetOption: func(r *reader) (clientapi.Status, map[string]string, error) {
			name, value := r.text("name"), r.text("value")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return statusOnly(s.SetOption(name, value))
		},
		stub.OpGetProtocolPrefixes: func(_ *reader) (clientapi.Status, map[string]string, error) {
			return items(s.GetProtocolPrefixes())
		},
		stub.OpGetLocalDevices: func(_ *reader) (clientapi.Status, map[string]string, error) {
			return items(s.GetLocalDevices())
		},
		stub.OpGetCertificates: func(_ *reader) (clientapi.Status, map[string]string, error) {
			return items(s.GetCertificates())
		},
		stub.OpProbeNetwork: func(r *reader) (clientapi.Status, map[string]string, error) {
			timeout, host := r.unsigned("timeoutMillis"), r.text("host")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return statusOnly(s.ProbeNetwork(timeout, host))
		},
		stub.OpLookupExistingProfile: func(_ *reader) (clientapi.Status, map[string]string, error) {
			b, status, err := s.LookupExistingProfile()
			if err != nil {
				return 0, nil, err
			}
			return status, h.collect(OutEmail, b), nil
		},
		stub.OpCreateProfile: func(r *reader) (clientapi.Status, map[string]string, error) {
			email, password := r.text("email"), r.text("password")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return statusOnly(s.CreateProfile(email, password))
		},
		stub.OpCreateSelfSignedProfile: func(r *reader) (clientapi.Status, map[string]string, error) {
			cn, password := r.text("commonName"), r.text("password")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return statusOnly(s.CreateSelfSignedProfile(cn, password))
		},
		stub.OpRemoveProfile: func(r *reader) (clientapi.Status, map[string]string, error) {
			id := r.text("id")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return statusOnly(s.RemoveProfile(id))
		},
		stub.OpGetFingerprint: func(r *reader) (clientapi.Status, map[string]string, error) {
			certID := r.text("certId")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			fp := make([]byte, stub.FingerprintSize)
			status, err := s.GetFingerprint(certID, fp)
			if err != nil || !status.OK() {
				return status, nil, err
			}
			return status, map[string]string{OutFingerprint: hex.EncodeToString(fp)}, nil
		},
		stub.OpSignup: func(r *reader) (clientapi.Status, map[string]string, error) {
			email, password := r.text("email"), r.text("password")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return statusOnly(s.Signup(email, password))
		},
		stub.OpResetAccountPassword: func(r *reader) (clientapi.Status, map[string]string, error) {
			email := r.text("email")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return statusOnly(s.ResetAccountPassword(email))
		},
		stub.OpOpenSession: func(r *reader) (clientapi.Status, map[string]string, error) {
			id, password := r.text("id"), r.text("password")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return session(s.OpenSession(id, password))
		},
		stub.OpOpenSessionBare: func(_ *reader) (clientapi.Status, map[string]string, error) {
			return session(s.OpenSessionBare())
		},
		stub.OpCloseSession: func(r *reader) (clientapi.Status, map[string]string, error) {
			sh := r.sessionHandle()
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return statusOnly(s.CloseSession(sh))
		},
		stub.OpSetBasestationAuthJSON: func(r *reader) (clientapi.Status, map[string]string, error) {
			sh, pairs := r.sessionHandle(), r.text("jsonKeyValuePairs")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return statusOnly(s.SetBasestationAuthJSON(sh, pairs))
		},
		stub.OpRPCSetDefaultInterface: func(r *reader) (clientapi.Status, map[string]string, error) {
			sh, def := r.sessionHandle(), r.text("interfaceDefinition")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return h.rpc(s.RPCSetDefaultInterface(sh, def))
		},
		stub.OpRPCSetInterface: func(r *reader) (clientapi.Status, map[string]string, error) {
			sh, host, def := r.sessionHandle(), r.text("host"), r.text("interfaceDefinition")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return h.rpc(s.RPCSetInterface(sh, host, def))
		},
		stub.OpRPCInvoke: func(r *reader) (clientapi.Status, map[string]string, error) {
			sh, url := r.sessionHandle(), r.text("nabtoUrl")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return h.rpc(s.RPCInvoke(sh, url))
		},
		stub.OpFetchURL: func(r *reader) (clientapi.Status, map[string]string, error) {
			sh, url := r.sessionHandle(), r.text("nabtoUrl")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return h.url(s.FetchURL(sh, url))
		},
		stub.OpSubmitPostData: func(r *reader) (clientapi.Status, map[string]string, error) {
			sh, url := r.sessionHandle(), r.text("nabtoUrl")
			data, mime := r.bytes("postBuffer"), r.text("postMimeType")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return h.url(s.SubmitPostData(sh, url, data, mime))
		},
		stub.OpGetSessionToken: func(r *reader) (clientapi.Status, map[string]string, error) {
			sh, n := r.sessionHandle(), r.size("bufLen")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			buf := make([]byte, n)
			written, status, err := s.GetSessionToken(sh, buf)
			if err != nil || written == 0 {
				return status, nil, err
			}
			return status, map[string]string{OutSessionToken: string(buf[:written])}, nil
		},
		stub.OpStreamOpen: func(r *reader) (clientapi.Status, map[string]string, error) {
			sh, server := r.sessionHandle(), r.text("serverId")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			st, status, err := s.StreamOpen(sh, server)
			if err != nil || !status.OK() {
				return status, nil, err
			}
			return status, map[string]string{OutStreamHandle: strconv.FormatUint(uint64(st), 10)}, nil
		},
		stub.OpStreamClose: func(r *reader) (clientapi.Status, map[string]string, error) {
			st := r.streamHandle()
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return statusOnly(s.StreamClose(st))
		},
		stub.OpStreamRead: func(r *reader) (clientapi.Status, map[string]string, error) {
			st := r.streamHandle()
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			res, err := s.StreamRead(st)
			if err != nil {
				return 0, nil, err
			}
			return res.Status, h.collect(OutData, res.Data), nil
		},
		stub.OpStreamReadIntoBuf: func(r *reader) (clientapi.Status, map[string]string, error) {
			st, n := r.streamHandle(), r.size("bufLen")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			buf := make([]byte, n)
			read, status, err := s.StreamReadIntoBuf(st, buf)
			if err != nil || !status.OK() {
				return status, nil, err
			}
			return status, map[string]string{OutData: string(buf[:read])}, nil
		},
		stub.OpStreamWrite: func(r *reader) (clientapi.Status, map[string]string, error) {
			st, data := r.streamHandle(), r.bytes("buf")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return statusOnly(s.StreamWrite(st, data))
		},
		stub.OpStreamConnectionType: func(r *reader) (clientapi.Status, map[string]string, error) {
			st := r.streamHandle()
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			ct, status, err := s.StreamConnectionType(st)
			if err != nil {
				return 0, nil, err
			}
			return status, map[string]string{OutConnectionType: strconv.Itoa(int(ct))}, nil
		},
		stub.OpStreamSetOption: func(r *reader) (clientapi.Status, map[string]string, error) {
			st, opt, value := r.streamHandle(), r.integer("optionName"), r.bytes("optionValue")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return statusOnly(s.StreamSetOption(st, clientapi.StreamOption(opt), value))
		},
		stub.OpTunnelOpenTCP: func(r *reader) (clientapi.Status, map[string]string, error) {
			sh := r.sessionHandle()
			local, remote := r.integer("localPort"), r.integer("remotePort")
			nabtoHost, remoteHost := r.text("nabtoHost"), r.text("remoteHost")
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			th, status, err := s.TunnelOpenTCP(sh, int(local), nabtoHost, remoteHost, int(remote))
			if err != nil || !status.OK() {
				return status, nil, err
			}
			return status, map[string]string{OutTunnelHandle: strconv.FormatUint(uint64(th), 10)}, nil
		},
		stub.OpTunnelClose: func(r *reader) (clientapi.Status, map[string]string, error) {
			th := r.tunnelHandle()
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			return statusOnly(s.TunnelClose(th))
		},
		stub.OpTunnelInfo: func(r *reader) (clientapi.Status, map[string]string, error) {
			th, sel := r.tunnelHandle(), clientapi.TunnelInfoSelector(r.integer("selector"))
			if err := r.Err(); err != nil {
				return 0, nil, err
			}
			info := make([]byte, sel.Size())
			status, err := s.TunnelInfo(th, sel, info)
			if err != nil || !status.OK() || len(info) == 0 {
				return status, nil, err
			}
			var v int64
			if len(info) == 2 {
				v = int64(binary.NativeEndian.Uint16(info))
			} else {
				v = int64(int32(binary.NativeEndian.Uint32(info)))
			}
			return status, map[string]string{OutInfo: strconv.FormatInt(v, 10)}, nil
		},
	}
}

func statusOnly(status clientapi.Status, err error) (clientapi.Status, map[string]string, error) {
	return status, nil, err
}

func session(sh clientapi.SessionHandle, status clientapi.Status, err error) (clientapi.Status, map[string]string, error) {
	if err != nil || !status.OK() {
		return status, nil, err
	}
	return status, map[string]string{OutSessionHandle: strconv.FormatUint(uint64(sh), 10)}, nil
}

func items(list []string, status clientapi.Status, err error) (clientapi.Status, map[string]string, error) {
	if err != nil {
		return 0, nil, err
	}
	out := map[string]string{OutCount: strconv.Itoa(len(list))}
	for i, item := range list {
		out[OutItemPrefix+strconv.Itoa(i)] = item
	}
	return status, out, nil
}

func (h *Host) rpc(res stub.RPCResult, err error) (clientapi.Status, map[string]string, error) {
	if err != nil {
		return 0, nil, err
	}
	return res.Status, h.collect(OutJSON, res.JSON), nil
}

func (h *Host) url(res stub.URLResult, err error) (clientapi.Status, map[string]string, error) {
	if err != nil {
		return 0, nil, err
	}
	out := h.collect(OutResult, res.Result)
	for k, v := range h.collect(OutMimeType, res.MimeType) {
		out[k] = v
	}
	return res.Status, out, nil
}

// collect copies b into an output map under key and frees it. A nil buffer
// yields an empty map.
func (h *Host) collect(key string, b *stub.Buffer) map[string]string {
	out := map[string]string{}
	if b == nil {
		return out
	}

	// Copy before freeing; a freed buffer reads as empty
	out[key] = b.String()
	if status := h.stub.Free(b); !status.OK() {
		h.log.WithField("key", key).Warnf("free returned %s", status)
	}
	return out
}
