package stub

// Op enumerates the native entry points emulated by the stub. The set is
// closed; every Op has exactly one Stub method.
type Op int

const (
	OpFree Op = iota
	OpVersion
	OpStartup
	OpShutdown
	OpSetApplicationName
	OpSetStaticResourceDir
	OpInstallDefaultStaticResources
	OpSetOption
	OpGetProtocolPrefixes
	OpGetLocalDevices
	OpGetCertificates
	OpProbeNetwork
	OpLookupExistingProfile
	OpCreateProfile
	OpCreateSelfSignedProfile
	OpRemoveProfile
	OpGetFingerprint
	OpSignup
	OpResetAccountPassword
	OpOpenSession
	OpOpenSessionBare
	OpCloseSession
	OpSetBasestationAuthJSON
	OpRPCSetDefaultInterface
	OpRPCSetInterface
	OpRPCInvoke
	OpFetchURL
	OpSubmitPostData
	OpGetSessionToken
	OpStreamOpen
	OpStreamClose
	OpStreamRead
	OpStreamReadIntoBuf
	OpStreamWrite
	OpStreamConnectionType
	OpStreamSetOption
	OpTunnelOpenTCP
	OpTunnelClose
	OpTunnelInfo

	opCount
)

// opNames holds the native entry point name of each Op.
var opNames = [opCount]string{
	OpFree:                          "nabtoFree",
	OpVersion:                       "nabtoVersion",
	OpStartup:                       "nabtoStartup",
	OpShutdown:                      "nabtoShutdown",
	OpSetApplicationName:            "nabtoSetApplicationName",
	OpSetStaticResourceDir:          "nabtoSetStaticResourceDir",
	OpInstallDefaultStaticResources: "nabtoInstallDefaultStaticResources",
	OpSetOption:                     "nabtoSetOption",
	OpGetProtocolPrefixes:           "nabtoGetProtocolPrefixes",
	OpGetLocalDevices:               "nabtoGetLocalDevices",
	OpGetCertificates:               "nabtoGetCertificates",
	OpProbeNetwork:                  "nabtoProbeNetwork",
	OpLookupExistingProfile:         "nabtoLookupExistingProfile",
	OpCreateProfile:                 "nabtoCreateProfile",
	OpCreateSelfSignedProfile:       "nabtoCreateSelfSignedProfile",
	OpRemoveProfile:                 "nabtoRemoveProfile",
	OpGetFingerprint:                "nabtoGetFingerprint",
	OpSignup:                        "nabtoSignup",
	OpResetAccountPassword:          "nabtoResetAccountPassword",
	OpOpenSession:                   "nabtoOpenSession",
	OpOpenSessionBare:               "nabtoOpenSessionBare",
	OpCloseSession:                  "nabtoCloseSession",
	OpSetBasestationAuthJSON:        "nabtoSetBasestationAuthJson",
	OpRPCSetDefaultInterface:        "nabtoRpcSetDefaultInterface",
	OpRPCSetInterface:               "nabtoRpcSetInterface",
	OpRPCInvoke:                     "nabtoRpcInvoke",
	OpFetchURL:                      "nabtoFetchUrl",
	OpSubmitPostData:                "nabtoSubmitPostData",
	OpGetSessionToken:               "nabtoGetSessionToken",
	OpStreamOpen:                    "nabtoStreamOpen",
	OpStreamClose:                   "nabtoStreamClose",
	OpStreamRead:                    "nabtoStreamRead",
	OpStreamReadIntoBuf:             "nabtoStreamReadIntoBuf",
	OpStreamWrite:                   "nabtoStreamWrite",
	OpStreamConnectionType:          "nabtoStreamConnectionType",
	OpStreamSetOption:               "nabtoStreamSetOption",
	OpTunnelOpenTCP:                 "nabtoTunnelOpenTcp",
	OpTunnelClose:                   "nabtoTunnelClose",
	OpTunnelInfo:                    "nabtoTunnelInfo",
}

var opsByName = func() map[string]Op {
	m := make(map[string]Op, opCount)
	for op, name := range opNames {
		m[name] = Op(op)
	}
	return m
}()

// String returns the native entry point name.
func (o Op) String() string {
	if o < 0 || o >= opCount {
		return "unknown"
	}
	return opNames[o]
}

// ParseOp resolves a native entry point name.
func ParseOp(name string) (Op, bool) {
	op, ok := opsByName[name]
	return op, ok
}

// Ops returns every Op in declaration order.
func Ops() []Op {
	out := make([]Op, 0, opCount)
	for op := Op(0); op < opCount; op++ {
		out = append(out, op)
	}
	return out
}
