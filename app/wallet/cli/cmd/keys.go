package cmd

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// errMissingName is returned when a wallet name is empty.
var errMissingName = errors.New("wallet name is required")

// generateKey creates a new private key and saves it under the account path
// with the specified name. An existing key file is never overwritten.
func generateKey(name string) (*ecdsa.PrivateKey, string, error) {
	if strings.TrimSpace(name) == "" {
		return nil, "", errMissingName
	}

	path := getPrivateKeyPath(name)

	if _, err := os.Stat(path); err == nil {
		return nil, "", fmt.Errorf("key file %s already exists", path)
	}

	if err := os.MkdirAll(accountPath, 0700); err != nil {
		return nil, "", fmt.Errorf("creating account folder: %w", err)
	}

	privateKey, err := crypto.GenerateKey()
	if err != nil {
		return nil, "", fmt.Errorf("generating key: %w", err)
	}

	if err := crypto.SaveECDSA(path, privateKey); err != nil {
		return nil, "", fmt.Errorf("saving key: %w", err)
	}

	return privateKey, path, nil
}

// loadKey reads the private key with the specified name from the account path.
func loadKey(name string) (*ecdsa.PrivateKey, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errMissingName
	}

	privateKey, err := crypto.LoadECDSA(getPrivateKeyPath(name))
	if err != nil {
		return nil, fmt.Errorf("loading key %q: %w", name, err)
	}

	return privateKey, nil
}

// address returns the hex address owned by the private key.
func address(privateKey *ecdsa.PrivateKey) string {
	return crypto.PubkeyToAddress(privateKey.PublicKey).String()
}
