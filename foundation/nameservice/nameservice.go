// Package nameservice reads a folder of ECDSA key files and creates a name
// service lookup for the addresses they own.
package nameservice

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// KeyExtension is the file extension used for private key files.
const KeyExtension = ".ecdsa"

// NameService maintains a map of addresses for name lookup.
type NameService struct {
	names map[string]string
}

// New constructs a name service with the key files found under root. A root
// folder that doesn't exist produces an empty name service.
func New(root string) (*NameService, error) {
	ns := NameService{
		names: make(map[string]string),
	}

	fn := func(fileName string, d fs.DirEntry, err error) error {
		if err != nil {
			if fileName == root && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return fmt.Errorf("walkdir failure: %w", err)
		}

		if d.IsDir() || filepath.Ext(fileName) != KeyExtension {
			return nil
		}

		privateKey, err := crypto.LoadECDSA(fileName)
		if err != nil {
			return fmt.Errorf("loading key %s: %w", fileName, err)
		}

		address := crypto.PubkeyToAddress(privateKey.PublicKey).String()
		ns.names[strings.ToLower(address)] = strings.TrimSuffix(filepath.Base(fileName), KeyExtension)

		return nil
	}

	if err := filepath.WalkDir(root, fn); err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	return &ns, nil
}

// Lookup returns the name for the specified address, or the address itself
// when no key file owns it.
func (ns *NameService) Lookup(address string) string {
	name, exists := ns.names[strings.ToLower(address)]
	if !exists {
		return address
	}
	return name
}

// Copy returns a copy of the map of addresses and names.
func (ns *NameService) Copy() map[string]string {
	cpy := make(map[string]string, len(ns.names))
	for address, name := range ns.names {
		cpy[address] = name
	}
	return cpy
}
