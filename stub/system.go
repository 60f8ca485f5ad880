package stub

import (
	"strconv"

	"github.com/nabto/clientapi"
)

// Version reports the canned library version. It reads no configuration.
func (s *Stub) Version() (major, minor int, status clientapi.Status) {
	s.begin()
	return VersionMajor, VersionMinor, s.done(OpVersion, clientapi.StatusOK)
}

// Startup emulates nabtoStartup. An empty homeDir is recorded as
// DefaultHomeDir.
func (s *Stub) Startup(homeDir string) (clientapi.Status, error) {
	s.begin()
	if homeDir == "" {
		homeDir = DefaultHomeDir
	}
	s.params.Record("nabtoHomeDir", homeDir)
	return s.simple(OpStartup)
}

// Shutdown always succeeds and reads no configuration.
func (s *Stub) Shutdown() clientapi.Status {
	s.begin()
	return s.done(OpShutdown, clientapi.StatusOK)
}

// SetApplicationName emulates nabtoSetApplicationName.
func (s *Stub) SetApplicationName(name string) (clientapi.Status, error) {
	s.begin()
	s.params.Record("applicationName", name)
	return s.simple(OpSetApplicationName)
}

// SetStaticResourceDir records dir and always succeeds.
func (s *Stub) SetStaticResourceDir(dir string) clientapi.Status {
	s.begin()
	s.params.Record("resourceDir", dir)
	return s.done(OpSetStaticResourceDir, clientapi.StatusOK)
}

// InstallDefaultStaticResources emulates nabtoInstallDefaultStaticResources.
func (s *Stub) InstallDefaultStaticResources(dir string) (clientapi.Status, error) {
	s.begin()
	s.params.Record("resourceDir", dir)
	return s.simple(OpInstallDefaultStaticResources)
}

// SetOption emulates nabtoSetOption.
func (s *Stub) SetOption(name, value string) (clientapi.Status, error) {
	s.begin()
	s.params.Record("name", name)
	s.params.Record("value", value)
	return s.simple(OpSetOption)
}

// ProbeNetwork emulates nabtoProbeNetwork.
func (s *Stub) ProbeNetwork(timeoutMillis uint64, host string) (clientapi.Status, error) {
	s.begin()
	s.params.RecordUint("timeoutMillis", timeoutMillis)
	s.params.Record("host", host)
	return s.simple(OpProbeNetwork)
}

// GetProtocolPrefixes returns prefixesLength items named p0, p1, ...
func (s *Stub) GetProtocolPrefixes() ([]string, clientapi.Status, error) {
	return s.list(OpGetProtocolPrefixes, KeyPrefixesLength, prefixProtocol)
}

// GetLocalDevices returns numberOfDevices items named d0, d1, ...
func (s *Stub) GetLocalDevices() ([]string, clientapi.Status, error) {
	return s.list(OpGetLocalDevices, KeyNumberOfDevices, prefixDevice)
}

// GetCertificates returns certificatesLength items named c0, c1, ...
func (s *Stub) GetCertificates() ([]string, clientapi.Status, error) {
	return s.list(OpGetCertificates, KeyCertificatesLength, prefixCertificate)
}

// list synthesizes the items of an array-returning call. Both the length key
// and the status are required even when the status is a failure; items are
// only produced on success.
func (s *Stub) list(op Op, lengthKey, prefix string) ([]string, clientapi.Status, error) {
	s.begin()

	// Read the length first; it is required even for failing calls
	n, err := s.count(op, lengthKey)
	if err != nil {
		return nil, 0, err
	}
	status, err := s.status(op)
	if err != nil {
		return nil, 0, err
	}
	if !status.OK() {
		return nil, s.done(op, status), nil
	}

	// Synthesize items named prefix followed by index
	items := make([]string, n)
	for i := range items {
		items[i] = prefix + strconv.Itoa(i)
	}
	return items, s.done(op, status), nil
}
