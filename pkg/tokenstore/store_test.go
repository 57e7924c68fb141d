package tokenstore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const testEndpoint = "https://jira.example.com"

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "tokens.ini"), nil)
}

func TestFileStore_SaveThenLoad(t *testing.T) {
	store := newTestStore(t)
	cred := Credential{Username: "dev@example.com", Token: "api-token-123"}

	if err := store.Save(testEndpoint, cred); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}

	loaded, err := store.Load(testEndpoint)
	if err != nil {
		t.Fatalf("Expected no error loading, got: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected stored credential, got nil")
	}
	if *loaded != cred {
		t.Errorf("Expected %+v, got %+v", cred, *loaded)
	}
}

func TestFileStore_SaveOverwritesExistingEntry(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save(testEndpoint, Credential{Username: "old", Token: "old-token"}); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}
	if err := store.Save(testEndpoint, Credential{Username: "new", Token: "new-token"}); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}

	loaded, err := store.Load(testEndpoint)
	if err != nil {
		t.Fatalf("Expected no error loading, got: %v", err)
	}
	if loaded == nil || loaded.Username != "new" || loaded.Token != "new-token" {
		t.Errorf("Expected overwritten credential, got %+v", loaded)
	}
}

func TestFileStore_SavePartitionsByEndpoint(t *testing.T) {
	store := newTestStore(t)
	other := "https://other.example.com"

	if err := store.Save(testEndpoint, Credential{Username: "a", Token: "token-a"}); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}
	if err := store.Save(other, Credential{Username: "b", Token: "token-b"}); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}

	first, _ := store.Load(testEndpoint)
	second, _ := store.Load(other)
	if first == nil || first.Token != "token-a" {
		t.Errorf("Expected token-a for first endpoint, got %+v", first)
	}
	if second == nil || second.Token != "token-b" {
		t.Errorf("Expected token-b for second endpoint, got %+v", second)
	}
}

func TestFileStore_SaveRejectsBlankFields(t *testing.T) {
	tests := []struct {
		name string
		cred Credential
	}{
		{"empty token", Credential{Username: "dev", Token: ""}},
		{"empty username", Credential{Username: "", Token: "api-token"}},
		{"both empty", Credential{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			err := store.Save(testEndpoint, tt.cred)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			if !IsValidationError(err) {
				t.Errorf("Expected validation error, got %T: %v", err, err)
			}

			// The record file must never be created by a rejected save.
			if _, statErr := os.Stat(store.Path()); !os.IsNotExist(statErr) {
				t.Error("Expected no record file after rejected save")
			}
		})
	}
}

func TestFileStore_LoadAbsent(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, store *FileStore)
	}{
		{
			name:  "missing file",
			setup: func(t *testing.T, store *FileStore) {},
		},
		{
			name: "missing section",
			setup: func(t *testing.T, store *FileStore) {
				if err := store.Save("https://other.example.com", Credential{Username: "x", Token: "y"}); err != nil {
					t.Fatalf("Setup save failed: %v", err)
				}
			},
		},
		{
			name: "empty token field",
			setup: func(t *testing.T, store *FileStore) {
				content := "[" + testEndpoint + "]\nusername = dev\ntoken =\n"
				if err := os.WriteFile(store.Path(), []byte(content), 0600); err != nil {
					t.Fatalf("Setup write failed: %v", err)
				}
			},
		},
		{
			name: "empty username field",
			setup: func(t *testing.T, store *FileStore) {
				content := "[" + testEndpoint + "]\nusername =\ntoken = tok\n"
				if err := os.WriteFile(store.Path(), []byte(content), 0600); err != nil {
					t.Fatalf("Setup write failed: %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			tt.setup(t, store)

			loaded, err := store.Load(testEndpoint)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if loaded != nil {
				t.Errorf("Expected absent credential, got %+v", loaded)
			}
		})
	}
}

func TestFileStore_LoadCorruptFileTreatedAsAbsent(t *testing.T) {
	store := newTestStore(t)
	if err := os.WriteFile(store.Path(), []byte("[unterminated\nnot ini at all"), 0600); err != nil {
		t.Fatalf("Setup write failed: %v", err)
	}

	loaded, err := store.Load(testEndpoint)
	if err != nil {
		t.Fatalf("Expected corrupt file to be treated as absent, got error: %v", err)
	}
	if loaded != nil {
		t.Errorf("Expected absent credential from corrupt file, got %+v", loaded)
	}
}

func TestFileStore_ClearRemovesEntry(t *testing.T) {
	store := newTestStore(t)
	if err := store.Save(testEndpoint, Credential{Username: "dev", Token: "tok"}); err != nil {
		t.Fatalf("Setup save failed: %v", err)
	}

	removed, err := store.Clear(testEndpoint)
	if err != nil {
		t.Fatalf("Expected no error clearing, got: %v", err)
	}
	if !removed {
		t.Error("Expected clear to report the entry as removed")
	}

	loaded, err := store.Load(testEndpoint)
	if err != nil {
		t.Fatalf("Expected no error loading, got: %v", err)
	}
	if loaded != nil {
		t.Errorf("Expected absent credential after clear, got %+v", loaded)
	}
}

func TestFileStore_ClearIsIdempotent(t *testing.T) {
	store := newTestStore(t)

	// Missing file.
	removed, err := store.Clear(testEndpoint)
	if err != nil {
		t.Errorf("Expected no error clearing missing file, got: %v", err)
	}
	if removed {
		t.Error("Expected nothing removed when the record file is missing")
	}

	// Missing section.
	if err := store.Save("https://other.example.com", Credential{Username: "x", Token: "y"}); err != nil {
		t.Fatalf("Setup save failed: %v", err)
	}
	removed, err = store.Clear(testEndpoint)
	if err != nil {
		t.Errorf("Expected no error clearing absent section, got: %v", err)
	}
	if removed {
		t.Error("Expected nothing removed when the endpoint has no entry")
	}
}

func TestFileStore_SaveRestrictsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Unix file modes are not meaningful on Windows")
	}

	store := newTestStore(t)
	if err := store.Save(testEndpoint, Credential{Username: "dev", Token: "tok"}); err != nil {
		t.Fatalf("Expected no error saving, got: %v", err)
	}

	info, err := os.Stat(store.Path())
	if err != nil {
		t.Fatalf("Failed to stat record file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected file mode 0600, got %04o", perm)
	}
}

func TestFileStore_SaveCreatesConfigDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "config")
	store := NewFileStore(filepath.Join(dir, "tokens.ini"), nil)

	if err := store.Save(testEndpoint, Credential{Username: "dev", Token: "tok"}); err != nil {
		t.Fatalf("Expected no error saving into missing directory, got: %v", err)
	}

	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Expected config directory to be created: %v", err)
	}
}
