package config

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"filippo.io/age"
)

const (
	// encryptionPrefix marks encrypted fields in the config file.
	encryptionPrefix = "age1:"
	// identityFileName is the name of the age identity file stored in the age directory.
	identityFileName = ".age-identity"
	// recipientFileName is the name of the age recipient file stored in the age directory.
	recipientFileName = ".age-recipient"
)

var (
	ageDirMu       sync.RWMutex
	ageDirOverride string
)

// SetAgeDirOverride changes where the age identity is read from and written
// to. An empty dir restores the default, the config directory.
func SetAgeDirOverride(dir string) {
	ageDirMu.Lock()
	defer ageDirMu.Unlock()

	ageDirOverride = dir
}

func getAgeDir() string {
	ageDirMu.RLock()
	defer ageDirMu.RUnlock()

	if ageDirOverride != "" {
		return ageDirOverride
	}

	return getXDGConfigDir()
}

// getOrCreateAgeIdentity returns the age identity and its recipient,
// generating and storing a new pair on first use.
func getOrCreateAgeIdentity() (age.Identity, age.Recipient, error) {
	dir := getAgeDir()
	identityPath := filepath.Join(dir, identityFileName)
	recipientPath := filepath.Join(dir, recipientFileName)

	if data, err := os.ReadFile(identityPath); err == nil {
		identities, err := age.ParseIdentities(bytes.NewReader(data))
		if err != nil {
			return nil, nil, fmt.Errorf("parse existing identity: %w", err)
		}
		if len(identities) == 0 {
			return nil, nil, fmt.Errorf("no identity found in %s", identityPath)
		}

		x25519, ok := identities[0].(*age.X25519Identity)
		if !ok {
			return nil, nil, fmt.Errorf("unsupported identity type in %s", identityPath)
		}

		return x25519, x25519.Recipient(), nil
	}

	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, nil, fmt.Errorf("generate identity: %w", err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("create age directory: %w", err)
	}

	if err := os.WriteFile(identityPath, []byte(identity.String()+"\n"), 0o600); err != nil {
		return nil, nil, fmt.Errorf("save identity: %w", err)
	}

	// The recipient file is informational; the key is always derived from
	// the identity.
	if err := os.WriteFile(recipientPath, []byte(identity.Recipient().String()+"\n"), 0o600); err != nil {
		return nil, nil, fmt.Errorf("save recipient: %w", err)
	}

	return identity, identity.Recipient(), nil
}

// isEncrypted checks if a string value is encrypted (starts with encryption prefix).
func isEncrypted(value string) bool {
	return strings.HasPrefix(value, encryptionPrefix)
}

// EncryptField encrypts a sensitive field value using age encryption.
// Values that are empty or already encrypted are returned unchanged.
func EncryptField(value string) (string, error) {
	if value == "" || isEncrypted(value) {
		return value, nil
	}

	_, recipient, err := getOrCreateAgeIdentity()
	if err != nil {
		return "", fmt.Errorf("get age identity: %w", err)
	}

	var encrypted bytes.Buffer

	w, err := age.Encrypt(&encrypted, recipient)
	if err != nil {
		return "", fmt.Errorf("create encrypt writer: %w", err)
	}

	if _, err := io.WriteString(w, value); err != nil {
		return "", fmt.Errorf("write to encrypt: %w", err)
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("close encrypt writer: %w", err)
	}

	return encryptionPrefix + base64.StdEncoding.EncodeToString(encrypted.Bytes()), nil
}

// DecryptField decrypts an encrypted field value. Plain values are returned
// as-is.
func DecryptField(value string) (string, error) {
	if value == "" || !isEncrypted(value) {
		return value, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(value, encryptionPrefix))
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	identity, _, err := getOrCreateAgeIdentity()
	if err != nil {
		return "", fmt.Errorf("get age identity: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(decoded), identity)
	if err != nil {
		return "", fmt.Errorf("create decrypt reader: %w", err)
	}

	var decrypted bytes.Buffer
	if _, err := io.Copy(&decrypted, r); err != nil {
		return "", fmt.Errorf("read decrypted data: %w", err)
	}

	return decrypted.String(), nil
}
