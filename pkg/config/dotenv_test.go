package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEnvFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	return path
}

func TestDotEnvLoader_OverlaysProcessEnvironment(t *testing.T) {
	t.Setenv("JIRA_USERNAME", "will-be-overridden")
	path := writeEnvFile(t, ".env", "JIRA_USERNAME=from-dotenv\n")

	config, err := NewDotEnvLoader(path).Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if config.Username != "from-dotenv" {
		t.Errorf("Expected .env value to win, got '%s'", config.Username)
	}
}

func TestDotEnvLoader_LaterFileWins(t *testing.T) {
	t.Setenv("JIRA_USERNAME", "")
	first := writeEnvFile(t, "first.env", "JIRA_USERNAME=first\n")
	second := writeEnvFile(t, "second.env", "JIRA_USERNAME=second\n")

	config, err := NewDotEnvLoader(first, second).Load()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if config.Username != "second" {
		t.Errorf("Expected later file to win, got '%s'", config.Username)
	}
}

func TestDotEnvLoader_MissingFileIsSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.env")

	if _, err := NewDotEnvLoader(path).Load(); err != nil {
		t.Errorf("Expected missing .env file to be skipped, got: %v", err)
	}
}

func TestDotEnvLoader_MalformedFileIsAnError(t *testing.T) {
	path := writeEnvFile(t, "broken.env", "not a key value pair\n")

	_, err := NewDotEnvLoader(path).Load()
	if err == nil {
		t.Fatal("Expected error for malformed .env file, got nil")
	}
	if _, ok := err.(*ConfigFileError); !ok {
		t.Errorf("Expected *ConfigFileError, got %T", err)
	}
}
