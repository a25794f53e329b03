//go:build darwin

package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/N3mes1s/claude-teleport-analyzer/pkg/models"
)

// loadCredentialsFromKeychain reads the Claude Code credential entry via
// the security CLI, the same store the login flow writes to.
func loadCredentialsFromKeychain() (*models.Credentials, error) {
	out, err := exec.Command("security", "find-generic-password", "-s", "Claude Code-credentials", "-w").Output()
	if err != nil {
		return nil, fmt.Errorf("no Claude Code credentials found in macOS Keychain: %w", err)
	}
	var creds models.Credentials
	if err := json.Unmarshal(bytes.TrimSpace(out), &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials JSON from Keychain: %w", err)
	}
	return &creds, nil
}
