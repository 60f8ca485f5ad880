package stub

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nabto/clientapi"
	"github.com/nabto/clientapi/store"
	"golang.org/x/sync/errgroup"
)

// invocations calls every fake operation that reads configuration, keyed by
// Op, with representative arguments.
func invocations(s *Stub) map[Op]func() error {
	wrap := func(_ clientapi.Status, err error) error { return err }
	return map[Op]func() error{
		OpStartup:                       func() error { return wrap(s.Startup("home")) },
		OpSetApplicationName:            func() error { return wrap(s.SetApplicationName("app")) },
		OpInstallDefaultStaticResources: func() error { return wrap(s.InstallDefaultStaticResources("dir")) },
		OpSetOption:                     func() error { return wrap(s.SetOption("n", "v")) },
		OpGetProtocolPrefixes:           func() error { _, _, err := s.GetProtocolPrefixes(); return err },
		OpGetLocalDevices:               func() error { _, _, err := s.GetLocalDevices(); return err },
		OpGetCertificates:               func() error { _, _, err := s.GetCertificates(); return err },
		OpProbeNetwork:                  func() error { return wrap(s.ProbeNetwork(1000, "host")) },
		OpLookupExistingProfile:         func() error { _, _, err := s.LookupExistingProfile(); return err },
		OpCreateProfile:                 func() error { return wrap(s.CreateProfile("e", "p")) },
		OpCreateSelfSignedProfile:       func() error { return wrap(s.CreateSelfSignedProfile("cn", "p")) },
		OpRemoveProfile:                 func() error { return wrap(s.RemoveProfile("id")) },
		OpGetFingerprint:                func() error { return wrap(s.GetFingerprint("c", make([]byte, FingerprintSize))) },
		OpSignup:                        func() error { return wrap(s.Signup("e", "p")) },
		OpResetAccountPassword:          func() error { return wrap(s.ResetAccountPassword("e")) },
		OpOpenSession:                   func() error { _, _, err := s.OpenSession("id", "pw"); return err },
		OpOpenSessionBare:               func() error { _, _, err := s.OpenSessionBare(); return err },
		OpCloseSession:                  func() error { return wrap(s.CloseSession(1)) },
		OpSetBasestationAuthJSON:        func() error { return wrap(s.SetBasestationAuthJSON(1, "{}")) },
		OpRPCSetDefaultInterface:        func() error { _, err := s.RPCSetDefaultInterface(1, "xml"); return err },
		OpRPCSetInterface:               func() error { _, err := s.RPCSetInterface(1, "h", "xml"); return err },
		OpRPCInvoke:                     func() error { _, err := s.RPCInvoke(1, "nabto://h/q.json"); return err },
		OpFetchURL:                      func() error { _, err := s.FetchURL(1, "nabto://h/q.json"); return err },
		OpSubmitPostData:                func() error { _, err := s.SubmitPostData(1, "u", []byte("d"), "text/plain"); return err },
		OpGetSessionToken:               func() error { _, _, err := s.GetSessionToken(1, make([]byte, SessionTokenBufferSize)); return err },
		OpStreamOpen:                    func() error { _, _, err := s.StreamOpen(1, "server"); return err },
		OpStreamClose:                   func() error { return wrap(s.StreamClose(1)) },
		OpStreamRead:                    func() error { _, err := s.StreamRead(1); return err },
		OpStreamReadIntoBuf:             func() error { _, _, err := s.StreamReadIntoBuf(1, make([]byte, 8)); return err },
		OpStreamWrite:                   func() error { return wrap(s.StreamWrite(1, []byte("d"))) },
		OpStreamConnectionType:          func() error { _, _, err := s.StreamConnectionType(1); return err },
		OpStreamSetOption:               func() error { return wrap(s.StreamSetOption(1, clientapi.StreamOptionReceiveTimeout, []byte{1, 0, 0, 0})) },
		OpTunnelOpenTCP:                 func() error { _, _, err := s.TunnelOpenTCP(1, 0, "h", "r", 80); return err },
		OpTunnelClose:                   func() error { return wrap(s.TunnelClose(1)) },
		OpTunnelInfo:                    func() error { return wrap(s.TunnelInfo(1, clientapi.TunnelInfoPort, make([]byte, 2))) },
	}
}

func TestScenarios(t *testing.T) {
	t.Run("Open Session With Empty Password", func(t *testing.T) {
		s := New(Config{})
		s.ReturnValues().Configure("status=0")

		h, status, err := s.OpenSession("alice", "")
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if h != clientapi.SessionSentinel || status != clientapi.StatusOK {
			t.Fatalf("expected handle %d and OK, got %d and %s", clientapi.SessionSentinel, h, status)
		}
		if got := s.Parameters().Snapshot(); got != "id=alice,password=" {
			t.Fatalf("unexpected captured parameters %q", got)
		}
	})

	t.Run("RPC Set Interface Error Detail", func(t *testing.T) {
		s := New(Config{})

		s.ReturnValues().Configure("status=26")
		res, err := s.RPCSetInterface(clientapi.SessionSentinel, "host", "<xml/>")
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if res.Status != clientapi.StatusFailedWithJSONMessage {
			t.Fatalf("expected status 26, got %s", res.Status)
		}
		if res.JSON.Len() == 0 {
			t.Fatalf("expected a non-empty error detail")
		}
		if st := s.Free(res.JSON); st != clientapi.StatusOK {
			t.Fatalf("expected free to succeed, got %s", st)
		}

		s.ReturnValues().Configure("status=18")
		res, err = s.RPCSetInterface(clientapi.SessionSentinel, "host", "<xml/>")
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}
		if res.Status != clientapi.StatusFailed || res.JSON != nil {
			t.Fatalf("expected FAILED without detail, got %s with %q", res.Status, res.JSON.String())
		}
	})

	t.Run("Local Devices", func(t *testing.T) {
		s := New(Config{})
		s.ReturnValues().Configure("numberOfDevices=3,status=0")

		devices, status, err := s.GetLocalDevices()
		if err != nil || status != clientapi.StatusOK {
			t.Fatalf("expected OK, got %s (%v)", status, err)
		}
		if diff := cmp.Diff([]string{"d0", "d1", "d2"}, devices); diff != "" {
			t.Fatalf("unexpected devices (-want +got):\n%s", diff)
		}
	})

	t.Run("Stream Read Without Configuration", func(t *testing.T) {
		s := New(Config{})

		res, err := s.StreamRead(clientapi.StreamSentinel)
		if !errors.Is(err, store.ErrMissingKey) {
			t.Fatalf("expected ErrMissingKey, got %v", err)
		}
		if res.Data != nil {
			t.Fatalf("expected no data, got %q", res.Data.String())
		}
	})
}

func TestMissingStatus(t *testing.T) {
	s := New(Config{})
	calls := invocations(s)

	for _, op := range Ops() {
		call, ok := calls[op]
		if !ok {
			continue
		}
		t.Run(op.String(), func(t *testing.T) {
			s.ReturnValues().Configure("")
			err := call()
			if !errors.Is(err, store.ErrMissingKey) {
				t.Fatalf("expected ErrMissingKey, got %v", err)
			}
			if !IsMisconfigured(err) {
				t.Fatalf("expected error to report misconfiguration")
			}
			if !strings.HasPrefix(err.Error(), op.String()) {
				t.Fatalf("expected error to name %s, got %q", op, err)
			}
		})
	}
}

func TestUnconfiguredOperations(t *testing.T) {
	s := New(Config{})

	major, minor, status := s.Version()
	if major != VersionMajor || minor != VersionMinor || status != clientapi.StatusOK {
		t.Fatalf("unexpected version %d.%d (%s)", major, minor, status)
	}
	if st := s.Shutdown(); st != clientapi.StatusOK {
		t.Fatalf("expected shutdown OK, got %s", st)
	}
	if st := s.SetStaticResourceDir("/res"); st != clientapi.StatusOK {
		t.Fatalf("expected OK, got %s", st)
	}
	if got, _ := s.Parameters().Get("resourceDir"); got != "/res" {
		t.Fatalf("expected resourceDir capture, got %q", got)
	}
}

func TestConditionalPayloads(t *testing.T) {
	for code := int32(0); code <= 27; code++ {
		status := clientapi.Status(code)
		t.Run(status.String(), func(t *testing.T) {
			s := New(Config{})
			s.ReturnValues().Configure(fmt.Sprintf("status=%d,numberOfDevices=2,prefixesLength=2,certificatesLength=2", code))

			h, st, err := s.OpenSession("alice", "pw")
			if err != nil || st != status {
				t.Fatalf("expected %s, got %s (%v)", status, st, err)
			}
			if status.OK() != (h == clientapi.SessionSentinel) {
				t.Fatalf("unexpected session handle %d for %s", h, status)
			}

			rpc, err := s.RPCInvoke(h, "nabto://device/q.json")
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			switch {
			case status.OK():
				if rpc.JSON.String() != CannedJSON {
					t.Fatalf("expected canned json, got %q", rpc.JSON.String())
				}
			case status.HasJSONDetail():
				if rpc.JSON.String() != CannedErrorDetail {
					t.Fatalf("expected canned error, got %q", rpc.JSON.String())
				}
			default:
				if rpc.JSON != nil {
					t.Fatalf("expected no json for %s", status)
				}
			}

			url, err := s.FetchURL(h, "nabto://device/q.json")
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if status.OK() != (url.Result != nil && url.MimeType != nil) {
				t.Fatalf("unexpected fetch buffers for %s", status)
			}

			devices, _, err := s.GetLocalDevices()
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if status.OK() != (len(devices) == 2) {
				t.Fatalf("unexpected devices %v for %s", devices, status)
			}

			read, err := s.StreamRead(clientapi.StreamSentinel)
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if status.OK() != (read.Data != nil) {
				t.Fatalf("unexpected stream data for %s", status)
			}

			ct, _, err := s.StreamConnectionType(clientapi.StreamSentinel)
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if status.OK() != (ct == clientapi.ConnectionP2P) {
				t.Fatalf("unexpected connection type %s for %s", ct, status)
			}

			tok := make([]byte, SessionTokenBufferSize)
			n, _, err := s.GetSessionToken(h, tok)
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if status.OK() != (n == SessionTokenLength) {
				t.Fatalf("unexpected token length %d for %s", n, status)
			}
		})
	}
}

func TestCapturedParameters(t *testing.T) {
	tt := []struct {
		name string
		call func(s *Stub) error
		want map[string]string
	}{
		{
			name: "Startup Default Home Dir",
			call: func(s *Stub) error { _, err := s.Startup(""); return err },
			want: map[string]string{"nabtoHomeDir": DefaultHomeDir},
		},
		{
			name: "Probe Network",
			call: func(s *Stub) error { _, err := s.ProbeNetwork(2500, "probe.nabto.net"); return err },
			want: map[string]string{"timeoutMillis": "2500", "host": "probe.nabto.net"},
		},
		{
			name: "Basestation Auth",
			call: func(s *Stub) error {
				_, err := s.SetBasestationAuthJSON(clientapi.SessionSentinel, `{"k":"v"}`)
				return err
			},
			want: map[string]string{"sessionHandle": "42", "jsonKeyValuePairs": `{"k":"v"}`},
		},
		{
			name: "Submit Post Data",
			call: func(s *Stub) error {
				_, err := s.SubmitPostData(clientapi.SessionSentinel, "nabto://d/post", []byte("payload"), "text/plain")
				return err
			},
			want: map[string]string{
				"sessionHandle": "42",
				"nabtoUrl":      "nabto://d/post",
				"postBuffer":    "payload",
				"postLen":       "7",
				"postMimeType":  "text/plain",
			},
		},
		{
			name: "Stream Write",
			call: func(s *Stub) error { _, err := s.StreamWrite(clientapi.StreamSentinel, []byte("hello")); return err },
			want: map[string]string{"streamHandle": "43", "buf": "hello", "len": "5"},
		},
		{
			name: "Stream Set Option",
			call: func(s *Stub) error {
				_, err := s.StreamSetOption(clientapi.StreamSentinel, clientapi.StreamOptionSendTimeout, []byte("ab"))
				return err
			},
			want: map[string]string{"streamHandle": "43", "optionName": "2", "optionValue": "ab", "optionLength": "2"},
		},
		{
			name: "Tunnel Open",
			call: func(s *Stub) error {
				_, _, err := s.TunnelOpenTCP(clientapi.SessionSentinel, -1, "device.nabto.net", "localhost", 8080)
				return err
			},
			want: map[string]string{
				"sessionHandle": "42",
				"localPort":     "-1",
				"nabtoHost":     "device.nabto.net",
				"remoteHost":    "localhost",
				"remotePort":    "8080",
			},
		},
		{
			name: "Session Token",
			call: func(s *Stub) error {
				_, _, err := s.GetSessionToken(clientapi.SessionSentinel, make([]byte, 10))
				return err
			},
			want: map[string]string{"sessionHandle": "42", "bufLen": "10"},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			s := New(Config{})
			s.ReturnValues().Configure("status=0")
			if err := tc.call(s); err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if diff := cmp.Diff(tc.want, s.Parameters().Values()); diff != "" {
				t.Fatalf("unexpected captured parameters (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParameterIsolation(t *testing.T) {
	s := New(Config{})
	s.ReturnValues().Configure("status=0")

	if _, _, err := s.OpenSession("alice", "pw"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, err := s.StreamClose(clientapi.StreamSentinel); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if diff := cmp.Diff(map[string]string{"streamHandle": "43"}, s.Parameters().Values()); diff != "" {
		t.Fatalf("expected only the latest call's inputs (-want +got):\n%s", diff)
	}

	t.Run("Failed Call Still Clears", func(t *testing.T) {
		s.ReturnValues().Configure("")
		if _, err := s.CloseSession(clientapi.SessionSentinel); err == nil {
			t.Fatalf("expected an error")
		}
		if diff := cmp.Diff(map[string]string{"sessionHandle": "42"}, s.Parameters().Values()); diff != "" {
			t.Fatalf("unexpected captured parameters (-want +got):\n%s", diff)
		}
	})
}

func TestBufferOwnership(t *testing.T) {
	s := New(Config{})
	s.ReturnValues().Configure("status=0")

	url, err := s.FetchURL(clientapi.SessionSentinel, "nabto://d/q.json")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if url.Result.String() != CannedContent || url.MimeType.String() != CannedMimeType {
		t.Fatalf("unexpected fetch result %q / %q", url.Result.String(), url.MimeType.String())
	}

	t.Run("Free Keeps Captured Parameters", func(t *testing.T) {
		if st := s.Free(url.Result); st != clientapi.StatusOK {
			t.Fatalf("expected free OK, got %s", st)
		}
		if got, ok := s.Parameters().Get("nabtoUrl"); !ok || got != "nabto://d/q.json" {
			t.Fatalf("expected nabtoUrl to survive free, got %q", got)
		}
		if s.ReturnValues().Len() != 1 {
			t.Fatalf("expected return values to survive free")
		}
	})

	t.Run("Freed Buffer Is Empty", func(t *testing.T) {
		if !url.Result.Freed() || url.Result.Bytes() != nil {
			t.Fatalf("expected released buffer")
		}
	})

	t.Run("Double Free", func(t *testing.T) {
		if st := s.Free(url.Result); st != clientapi.StatusIllegalParameter {
			t.Fatalf("expected ILLEGAL_PARAMETER, got %s", st)
		}
	})

	t.Run("Free Nil", func(t *testing.T) {
		if st := s.Free(nil); st != clientapi.StatusOK {
			t.Fatalf("expected OK, got %s", st)
		}
	})

	t.Run("Fresh Buffer Per Call", func(t *testing.T) {
		a, _ := s.StreamRead(clientapi.StreamSentinel)
		a.Data.Bytes()[0] = 'X'
		b, _ := s.StreamRead(clientapi.StreamSentinel)
		if b.Data.String() != CannedStreamData {
			t.Fatalf("expected unmodified data, got %q", b.Data.String())
		}
	})
}

func TestSessionToken(t *testing.T) {
	s := New(Config{})
	s.ReturnValues().Configure("status=0")

	t.Run("Exact Size", func(t *testing.T) {
		buf := make([]byte, SessionTokenBufferSize)
		n, _, err := s.GetSessionToken(clientapi.SessionSentinel, buf)
		if err != nil || n != SessionTokenLength {
			t.Fatalf("expected %d, got %d (%v)", SessionTokenLength, n, err)
		}
		if string(buf[:n]) != strings.Repeat("x", SessionTokenLength) || buf[n] != 0 {
			t.Fatalf("unexpected token %q", buf)
		}
	})

	t.Run("Other Size", func(t *testing.T) {
		buf := make([]byte, 128)
		n, _, err := s.GetSessionToken(clientapi.SessionSentinel, buf)
		if err != nil || n != 0 {
			t.Fatalf("expected no token, got %d (%v)", n, err)
		}
	})
}

func TestFingerprint(t *testing.T) {
	s := New(Config{})
	s.ReturnValues().Configure("status=0")

	fp := make([]byte, FingerprintSize)
	if _, err := s.GetFingerprint("cert", fp); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	for i, b := range fp {
		if int(b) != i {
			t.Fatalf("unexpected fingerprint %v", fp)
		}
	}

	short := make([]byte, 4)
	if _, err := s.GetFingerprint("cert", short); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if diff := cmp.Diff([]byte{0, 0, 0, 0}, short); diff != "" {
		t.Fatalf("expected untouched buffer (-want +got):\n%s", diff)
	}
}

func TestStreamReadIntoBuf(t *testing.T) {
	s := New(Config{})
	s.ReturnValues().Configure("status=0")

	buf := make([]byte, 2)
	n, _, err := s.StreamReadIntoBuf(clientapi.StreamSentinel, buf)
	if err != nil || n != 2 || string(buf) != CannedStreamData[:2] {
		t.Fatalf("expected truncated read, got %d %q (%v)", n, buf, err)
	}
}

func TestTunnel(t *testing.T) {
	s := New(Config{})
	s.ReturnValues().Configure("status=0")

	h, _, err := s.TunnelOpenTCP(clientapi.SessionSentinel, 0, "device", "localhost", 22)
	if err != nil || h != clientapi.TunnelSentinel {
		t.Fatalf("expected tunnel sentinel, got %d (%v)", h, err)
	}

	tt := []struct {
		selector clientapi.TunnelInfoSelector
		want     int32
	}{
		{clientapi.TunnelInfoVersion, int32(CannedTunnelVersion)},
		{clientapi.TunnelInfoStatus, int32(CannedTunnelState)},
		{clientapi.TunnelInfoLastError, CannedTunnelLastError},
		{clientapi.TunnelInfoPort, int32(CannedTunnelPort)},
	}

	for _, tc := range tt {
		t.Run(fmt.Sprintf("Selector %d", tc.selector), func(t *testing.T) {
			info := make([]byte, tc.selector.Size())
			if _, err := s.TunnelInfo(h, tc.selector, info); err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			var got int32
			if len(info) == 2 {
				got = int32(binary.NativeEndian.Uint16(info))
			} else {
				got = int32(binary.NativeEndian.Uint32(info))
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}

	t.Run("Size Mismatch Is Ignored", func(t *testing.T) {
		info := make([]byte, 8)
		st, err := s.TunnelInfo(h, clientapi.TunnelInfoVersion, info)
		if err != nil || st != clientapi.StatusOK {
			t.Fatalf("expected OK, got %s (%v)", st, err)
		}
		if diff := cmp.Diff(make([]byte, 8), info); diff != "" {
			t.Fatalf("expected untouched buffer (-want +got):\n%s", diff)
		}
	})
}

func TestListRequiresLength(t *testing.T) {
	t.Run("Missing Length", func(t *testing.T) {
		s := New(Config{})
		s.ReturnValues().Configure("status=18")
		if _, _, err := s.GetCertificates(); !errors.Is(err, store.ErrMissingKey) {
			t.Fatalf("expected ErrMissingKey, got %v", err)
		}
	})

	t.Run("Negative Length", func(t *testing.T) {
		s := New(Config{})
		s.ReturnValues().Configure("status=0,prefixesLength=-1")
		if _, _, err := s.GetProtocolPrefixes(); !errors.Is(err, store.ErrInvalidValue) {
			t.Fatalf("expected ErrInvalidValue, got %v", err)
		}
	})

	t.Run("Double Digit Names", func(t *testing.T) {
		s := New(Config{})
		s.ReturnValues().Configure("status=0,certificatesLength=12")
		certs, _, err := s.GetCertificates()
		if err != nil || len(certs) != 12 || certs[11] != "c11" {
			t.Fatalf("unexpected certificates %v (%v)", certs, err)
		}
	})
}

func TestIndependentInstances(t *testing.T) {
	var g errgroup.Group

	for i := 0; i < 8; i++ {
		g.Go(func() error {
			s := New(Config{})
			s.ReturnValues().Configure(fmt.Sprintf("status=0,numberOfDevices=%d", i))

			for j := 0; j < 50; j++ {
				id := fmt.Sprintf("user-%d-%d", i, j)
				if _, _, err := s.OpenSession(id, "pw"); err != nil {
					return err
				}
				if got, _ := s.Parameters().Get("id"); got != id {
					return fmt.Errorf("instance %d: expected id %q, got %q", i, id, got)
				}
				devices, _, err := s.GetLocalDevices()
				if err != nil {
					return err
				}
				if len(devices) != i {
					return fmt.Errorf("instance %d: expected %d devices, got %d", i, i, len(devices))
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestOps(t *testing.T) {
	for _, op := range Ops() {
		got, ok := ParseOp(op.String())
		if !ok || got != op {
			t.Fatalf("expected %s to resolve to itself, got %v (%v)", op, got, ok)
		}
	}
	if _, ok := ParseOp("nabtoNotAThing"); ok {
		t.Fatalf("expected unknown name to fail")
	}
	if Op(-1).String() != "unknown" {
		t.Fatalf("expected unknown op name")
	}
}
