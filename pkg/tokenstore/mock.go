package tokenstore

// MockStore implements the Store interface for testing
// This enables unit testing the authenticator without touching the filesystem
type MockStore struct {
	// Credentials maps endpoint URLs to stored credentials
	Credentials map[string]Credential

	// LoadError simulates load failures when set
	LoadError error

	// SaveError simulates save failures when set
	SaveError error

	// ClearError simulates clear failures when set
	ClearError error

	// LoadCallCount tracks how many times Load was called
	LoadCallCount int

	// SaveCallCount tracks how many times Save was called
	SaveCallCount int

	// ClearCallCount tracks how many times Clear was called
	ClearCallCount int

	// LastSavedEndpoint tracks the endpoint of the last Save call
	LastSavedEndpoint string

	// LastSavedCredential tracks the credential of the last Save call
	LastSavedCredential Credential
}

// NewMockStore creates a new mock credential store for testing
func NewMockStore() *MockStore {
	return &MockStore{
		Credentials: make(map[string]Credential),
	}
}

// Load returns the configured credential for the endpoint, if any
func (m *MockStore) Load(endpoint string) (*Credential, error) {
	m.LoadCallCount++
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if cred, exists := m.Credentials[endpoint]; exists {
		if cred.Username == "" || cred.Token == "" {
			return nil, nil
		}
		copied := cred
		return &copied, nil
	}
	return nil, nil
}

// Save records the credential for the endpoint, enforcing the same
// blank-field validation as the real store
func (m *MockStore) Save(endpoint string, cred Credential) error {
	m.SaveCallCount++
	m.LastSavedEndpoint = endpoint
	m.LastSavedCredential = cred

	if cred.Username == "" || cred.Token == "" {
		return &StoreError{
			Type:    "validation_error",
			Message: "username and token cannot be empty",
			Context: endpoint,
		}
	}

	if m.SaveError != nil {
		return m.SaveError
	}

	m.Credentials[endpoint] = cred
	return nil
}

// Clear removes the endpoint's entry if present and reports whether one
// was removed
func (m *MockStore) Clear(endpoint string) (bool, error) {
	m.ClearCallCount++
	if m.ClearError != nil {
		return false, m.ClearError
	}
	_, existed := m.Credentials[endpoint]
	delete(m.Credentials, endpoint)
	return existed, nil
}
