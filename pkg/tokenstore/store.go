// Package tokenstore persists JIRA credentials per endpoint in an INI
// record file, one section per endpoint URL with username and token keys.
// The store is the only component that reads or writes the record file.
package tokenstore

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/ini.v1"
)

// Credential is a username and API token pair for one endpoint. Both
// fields must be non-empty to be usable; the store never persists or
// returns a credential with an empty field.
type Credential struct {
	Username string
	Token    string
}

// Store defines the interface for credential persistence
// This enables dependency injection and testing with mock implementations
type Store interface {
	// Load returns the credential saved for the endpoint, or nil when
	// there is none. A missing or unreadable record file is "no stored
	// credential", not an error.
	Load(endpoint string) (*Credential, error)

	// Save writes the credential for the endpoint, overwriting any prior
	// entry, and restricts the record file to owner read/write.
	Save(endpoint string, cred Credential) error

	// Clear removes the endpoint's entry if present and reports whether
	// one was removed. Clearing an absent entry is a no-op.
	Clear(endpoint string) (bool, error)
}

// FileStore implements Store on a single INI file
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a credential store backed by the INI file at path.
// The logger receives non-fatal warnings (corrupt record file, failed
// permission change); pass nil to discard them.
func NewFileStore(path string, logger *zap.Logger) *FileStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileStore{
		path:   path,
		logger: logger,
	}
}

// Path returns the location of the record file.
func (s *FileStore) Path() string {
	return s.path
}

// Load returns the credential saved for the endpoint, or nil when there
// is none. Corrupt record content is treated as absent and reported as a
// warning rather than a failure, so a damaged file never blocks a run.
func (s *FileStore) Load(endpoint string) (*Credential, error) {
	file, ok := s.read()
	if !ok {
		return nil, nil
	}

	section, err := file.GetSection(endpoint)
	if err != nil {
		return nil, nil
	}

	cred := Credential{
		Username: section.Key("username").String(),
		Token:    section.Key("token").String(),
	}
	if cred.Username == "" || cred.Token == "" {
		return nil, nil
	}

	return &cred, nil
}

// Save writes the credential for the endpoint, overwriting any prior
// entry. An empty username or token is rejected with a validation error
// before the file is touched. The file mode change to 0600 is
// best-effort: on failure the save still succeeds and a
// *PermissionWarning is returned for the caller to surface.
func (s *FileStore) Save(endpoint string, cred Credential) error {
	if endpoint == "" {
		return &StoreError{
			Type:    "validation_error",
			Message: "endpoint cannot be empty",
		}
	}
	if cred.Username == "" {
		return &StoreError{
			Type:    "validation_error",
			Message: "username cannot be empty",
			Context: endpoint,
		}
	}
	if cred.Token == "" {
		return &StoreError{
			Type:    "validation_error",
			Message: "token cannot be empty",
			Context: endpoint,
		}
	}

	file, ok := s.read()
	if !ok {
		file = ini.Empty()
	}

	section := file.Section(endpoint)
	section.Key("username").SetValue(cred.Username)
	section.Key("token").SetValue(cred.Token)

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return &StoreError{
			Type:    "filesystem_error",
			Message: fmt.Sprintf("failed to create config directory: %s", filepath.Dir(s.path)),
			Err:     err,
			Context: endpoint,
		}
	}

	if err := file.SaveTo(s.path); err != nil {
		return &StoreError{
			Type:    "filesystem_error",
			Message: "failed to write token file",
			Err:     err,
			Context: endpoint,
		}
	}

	if err := os.Chmod(s.path, 0600); err != nil {
		s.logger.Warn("could not restrict token file permissions",
			zap.String("path", s.path),
			zap.Error(err))
		return &PermissionWarning{Path: s.path, Err: err}
	}

	return nil
}

// Clear removes the endpoint's entry if present and reports whether one
// was removed. A missing record file or absent entry is a no-op.
func (s *FileStore) Clear(endpoint string) (bool, error) {
	file, ok := s.read()
	if !ok {
		return false, nil
	}

	if _, err := file.GetSection(endpoint); err != nil {
		return false, nil
	}

	file.DeleteSection(endpoint)

	if err := file.SaveTo(s.path); err != nil {
		return false, &StoreError{
			Type:    "filesystem_error",
			Message: "failed to write token file",
			Err:     err,
			Context: endpoint,
		}
	}

	return true, nil
}

// read loads the record file, reporting whether usable content was found.
// A missing file is silent; an unparseable one is surfaced as a warning
// and then treated as absent.
func (s *FileStore) read() (*ini.File, bool) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, false
	}

	file, err := ini.Load(s.path)
	if err != nil {
		s.logger.Warn("token file is unreadable, treating saved credentials as absent",
			zap.String("path", s.path),
			zap.Error(err))
		return nil, false
	}

	return file, true
}
