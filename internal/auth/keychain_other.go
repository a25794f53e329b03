//go:build !darwin

package auth

import "github.com/N3mes1s/claude-teleport-analyzer/pkg/models"

func loadCredentialsFromKeychain() (*models.Credentials, error) {
	return nil, errKeychainUnavailable
}
