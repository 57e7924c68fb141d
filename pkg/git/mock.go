package git

// MockLister implements the BranchLister interface for testing
type MockLister struct {
	// BranchNames is returned by Branches when no error is configured
	BranchNames []string

	// BranchesError simulates enumeration failures when set
	BranchesError error

	// BranchesCallCount tracks how many times Branches was called
	BranchesCallCount int

	// LastRepoPath tracks the path of the last Branches call
	LastRepoPath string
}

// NewMockLister creates a new mock branch lister for testing
func NewMockLister(branches ...string) *MockLister {
	return &MockLister{BranchNames: branches}
}

// Branches returns the configured branch names or error
func (m *MockLister) Branches(repoPath string) ([]string, error) {
	m.BranchesCallCount++
	m.LastRepoPath = repoPath

	if m.BranchesError != nil {
		return nil, m.BranchesError
	}
	return m.BranchNames, nil
}
