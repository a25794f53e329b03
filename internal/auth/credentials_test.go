package auth

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCredentialsFilePathDefault tests the ~/.claude default location
func TestCredentialsFilePathDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("CLAUDE_CONFIG_DIR", "")

	want := filepath.Join(home, ".claude", ".credentials.json")
	if got := CredentialsFilePath(); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

// TestCredentialsFilePathOverride tests the CLAUDE_CONFIG_DIR override
func TestCredentialsFilePathOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CLAUDE_CONFIG_DIR", dir)

	want := filepath.Join(dir, ".credentials.json")
	if got := CredentialsFilePath(); got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

// TestLoadCredentialsFromFile tests reading a valid credentials file
func TestLoadCredentialsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".credentials.json")
	content := `{"claudeAiOauth": {"accessToken": "sk-ant-oat01-test", "expiresAt": 1767225600000, "scopes": ["user:inference"]}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	creds, err := loadCredentialsFromFile(path)
	if err != nil {
		t.Fatalf("Failed to load credentials: %v", err)
	}
	if creds.ClaudeAIOAuth.AccessToken != "sk-ant-oat01-test" {
		t.Errorf("Unexpected token: %q", creds.ClaudeAIOAuth.AccessToken)
	}
}

// TestLoadCredentialsMalformedFile tests that broken JSON is a hard error
func TestLoadCredentialsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".credentials.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	if _, err := loadCredentialsFromFile(path); err == nil {
		t.Error("Malformed credentials file should fail to load")
	}
}

// TestLoadCredentialsViaConfigDir tests the full resolution path through
// the CLAUDE_CONFIG_DIR override
func TestLoadCredentialsViaConfigDir(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("Keychain may shadow the file on macOS")
	}

	dir := t.TempDir()
	t.Setenv("CLAUDE_CONFIG_DIR", dir)
	content := `{"claudeAiOauth": {"accessToken": "sk-ant-oat01-cfg", "expiresAt": 1, "scopes": []}}`
	if err := os.WriteFile(filepath.Join(dir, ".credentials.json"), []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	creds, err := LoadCredentials()
	if err != nil {
		t.Fatalf("Failed to resolve credentials: %v", err)
	}
	if creds.ClaudeAIOAuth.AccessToken != "sk-ant-oat01-cfg" {
		t.Errorf("Unexpected token: %q", creds.ClaudeAIOAuth.AccessToken)
	}
}

// TestLoadCredentialsNoneFound tests the exhausted-sources error
func TestLoadCredentialsNoneFound(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("Keychain may hold real credentials on macOS")
	}

	empty := t.TempDir()
	t.Setenv("CLAUDE_CONFIG_DIR", empty)

	_, err := LoadCredentials()
	if err == nil {
		t.Fatal("Expected an error with no credential sources")
	}

	var noCreds *NoCredentialsError
	if !errors.As(err, &noCreds) {
		t.Fatalf("Expected NoCredentialsError, got %T: %v", err, err)
	}
	if len(noCreds.Checked) == 0 {
		t.Error("Checked sources should be listed")
	}
	if !strings.Contains(err.Error(), filepath.Join(empty, ".credentials.json")) {
		t.Errorf("Error should name the checked file path: %v", err)
	}
	if !strings.Contains(err.Error(), "logged in") {
		t.Errorf("Error should hint at logging in: %v", err)
	}
}
