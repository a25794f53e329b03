// Package auth locates Claude Code credentials. Resolution is ordered:
// the platform secret store first (where one exists), then the
// credentials file; the first source that succeeds wins.
package auth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/N3mes1s/claude-teleport-analyzer/pkg/models"
)

const credentialsFileName = ".credentials.json"

// errKeychainUnavailable marks platforms without a usable secret store;
// it is a soft failure and resolution moves on to the next source.
var errKeychainUnavailable = errors.New("keychain not available on this platform")

// NoCredentialsError is returned when every credential source has been
// exhausted. Checked lists each source that was tried so the user can see
// where to put credentials.
type NoCredentialsError struct {
	Checked []string
}

func (e *NoCredentialsError) Error() string {
	return fmt.Sprintf(
		"no Claude Code credentials found (checked %s); make sure you're logged in with 'claude' first",
		strings.Join(e.Checked, ", "))
}

// CredentialsFilePath returns the path to .credentials.json, respecting
// the CLAUDE_CONFIG_DIR override.
func CredentialsFilePath() string {
	if dir := os.Getenv("CLAUDE_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, credentialsFileName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".claude", credentialsFileName)
}

// LoadCredentials resolves credentials from the platform secret store,
// falling back to the credentials file. A missing or inaccessible
// keychain entry is not fatal; only exhausting every source is.
func LoadCredentials() (*models.Credentials, error) {
	var checked []string

	creds, err := loadCredentialsFromKeychain()
	if err == nil {
		return creds, nil
	}
	if !errors.Is(err, errKeychainUnavailable) {
		checked = append(checked, "macOS Keychain (Claude Code-credentials)")
	}

	path := CredentialsFilePath()
	checked = append(checked, path)
	if _, err := os.Stat(path); err == nil {
		return loadCredentialsFromFile(path)
	}

	return nil, &NoCredentialsError{Checked: checked}
}

func loadCredentialsFromFile(path string) (*models.Credentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials from %s: %w", path, err)
	}
	var creds models.Credentials
	if err := json.Unmarshal(bytes.TrimSpace(raw), &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials JSON from %s: %w", path, err)
	}
	return &creds, nil
}
