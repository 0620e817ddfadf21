package signer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ProtonMail/go-crypto/openpgp"
)

var armorPrefix = []byte("-----BEGIN")

// KeyringVerifier implements Verifier with an OpenPGP public keyring
type KeyringVerifier struct {
	keyring openpgp.EntityList
}

// NewKeyringVerifier loads a keyring file, armored or binary
func NewKeyringVerifier(keyPath string) (*KeyringVerifier, error) {
	if keyPath == "" {
		return nil, fmt.Errorf("keyring path is empty")
	}

	keyFile, err := os.Open(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	defer keyFile.Close()

	// Try to parse as armored keyring first
	entityList, err := openpgp.ReadArmoredKeyRing(keyFile)
	if err != nil {
		if _, serr := keyFile.Seek(0, io.SeekStart); serr != nil {
			return nil, fmt.Errorf("failed to rewind keyring: %w", serr)
		}
		entityList, err = openpgp.ReadKeyRing(keyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read keyring: %w", err)
		}
	}

	if len(entityList) == 0 {
		return nil, fmt.Errorf("no keys found in keyring")
	}

	return &KeyringVerifier{keyring: entityList}, nil
}

// VerifyFile checks the detached signature sigPath over path
func (v *KeyringVerifier) VerifyFile(path, sigPath string) (string, error) {
	sig, err := os.ReadFile(sigPath)
	if err != nil {
		return "", fmt.Errorf("failed to read signature: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return v.check(f, sig)
}

func (v *KeyringVerifier) check(signed io.Reader, sig []byte) (string, error) {
	var (
		entity *openpgp.Entity
		err    error
	)

	// makepkg writes binary signatures, gpg --armor the other kind
	if bytes.HasPrefix(bytes.TrimSpace(sig), armorPrefix) {
		entity, err = openpgp.CheckArmoredDetachedSignature(v.keyring, signed, bytes.NewReader(sig), nil)
	} else {
		entity, err = openpgp.CheckDetachedSignature(v.keyring, signed, bytes.NewReader(sig), nil)
	}
	if err != nil {
		return "", fmt.Errorf("signature verification failed: %w", err)
	}

	return describe(entity), nil
}

// describe names a key by its first identity and key ID
func describe(entity *openpgp.Entity) string {
	keyID := entity.PrimaryKey.KeyIdString()

	names := make([]string, 0, len(entity.Identities))
	for name := range entity.Identities {
		names = append(names, name)
	}
	if len(names) == 0 {
		return keyID
	}
	sort.Strings(names)
	return fmt.Sprintf("%s (%s)", names[0], keyID)
}
