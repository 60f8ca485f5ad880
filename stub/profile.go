package stub

import "github.com/nabto/clientapi"

// LookupExistingProfile returns a caller-owned buffer holding the canned
// profile email on success.
func (s *Stub) LookupExistingProfile() (*Buffer, clientapi.Status, error) {
	s.begin()
	status, err := s.status(OpLookupExistingProfile)
	if err != nil {
		return nil, 0, err
	}
	if !status.OK() {
		return nil, s.done(OpLookupExistingProfile, status), nil
	}
	return newBuffer(CannedProfileEmail), s.done(OpLookupExistingProfile, status), nil
}

// CreateProfile emulates nabtoCreateProfile.
func (s *Stub) CreateProfile(email, password string) (clientapi.Status, error) {
	s.begin()
	s.params.Record("email", email)
	s.params.Record("password", password)
	return s.simple(OpCreateProfile)
}

// CreateSelfSignedProfile emulates nabtoCreateSelfSignedProfile.
func (s *Stub) CreateSelfSignedProfile(commonName, password string) (clientapi.Status, error) {
	s.begin()
	s.params.Record("commonName", commonName)
	s.params.Record("password", password)
	return s.simple(OpCreateSelfSignedProfile)
}

// RemoveProfile emulates nabtoRemoveProfile.
func (s *Stub) RemoveProfile(id string) (clientapi.Status, error) {
	s.begin()
	s.params.Record("id", id)
	return s.simple(OpRemoveProfile)
}

// GetFingerprint writes a canned fingerprint into fp on success, but only
// when fp is exactly FingerprintSize bytes; any other size leaves fp as is.
func (s *Stub) GetFingerprint(certID string, fp []byte) (clientapi.Status, error) {
	s.begin()
	s.params.Record("certId", certID)
	status, err := s.status(OpGetFingerprint)
	if err != nil {
		return 0, err
	}
	if status.OK() && len(fp) == FingerprintSize {
		for i := range fp {
			fp[i] = byte(i)
		}
	}
	return s.done(OpGetFingerprint, status), nil
}

// Signup emulates nabtoSignup.
func (s *Stub) Signup(email, password string) (clientapi.Status, error) {
	s.begin()
	s.params.Record("email", email)
	s.params.Record("password", password)
	return s.simple(OpSignup)
}

// ResetAccountPassword emulates nabtoResetAccountPassword.
func (s *Stub) ResetAccountPassword(email string) (clientapi.Status, error) {
	s.begin()
	s.params.Record("email", email)
	return s.simple(OpResetAccountPassword)
}
