// Package auth persists the release API token in the system keyring.
package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	service = "bingolink-cli"
	user    = "github-token"
)

// SetToken persists the API token to the system keyring.
func SetToken(token string) error {
	return keyring.Set(service, user, token)
}

// GetToken retrieves the API token from the system keyring.
func GetToken() (string, error) {
	return keyring.Get(service, user)
}

// DeleteToken removes the API token from the system keyring.
func DeleteToken() error {
	return keyring.Delete(service, user)
}

// Token resolves the token to send with API requests: an explicitly configured value wins over the keyring.
// A missing keyring entry is not an error; anonymous requests are allowed, just rate limited.
func Token(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}

	token, err := GetToken()
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	return token, err
}
