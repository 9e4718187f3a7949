package domain

import (
	"encoding/base64"
	"fmt"
	"os"
)

// SigningKey is the server-side key used to sign verification log records.
//
// Unlike operation keys, which callers supply per request, the signing key
// belongs to the process and lives for its lifetime. It is loaded once at
// startup, either directly from the environment or unwrapped through a KMS
// keeper when SIGNING_KEY_KMS_URI is configured.
type SigningKey struct {
	Key []byte
}

// Close securely clears the signing key from memory.
func (s *SigningKey) Close() {
	Zero(s.Key)
	s.Key = nil
}

// LoadSigningKeyFromEnv loads the log signing key from the environment.
//
// The SHIELD_SIGNING_KEY variable must hold a standard-base64 encoding of
// exactly 32 bytes of key material. When a KMS URI is configured the value
// is instead the KMS-wrapped ciphertext and must be unwrapped by the caller
// before use; this function only handles the direct (unwrapped) form.
//
// Returns:
//   - ErrSigningKeyNotSet if SHIELD_SIGNING_KEY is not configured
//   - ErrInvalidSigningKeyBase64 if the value is not valid base64
//   - ErrInvalidKeyLength if the decoded key is not exactly 32 bytes
func LoadSigningKeyFromEnv() (*SigningKey, error) {
	raw := os.Getenv("SHIELD_SIGNING_KEY")
	if raw == "" {
		return nil, ErrSigningKeyNotSet
	}

	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSigningKeyBase64, err)
	}
	if len(key) != KeySize {
		Zero(key)
		return nil, fmt.Errorf("%w: signing key must be %d bytes, got %d", ErrInvalidKeyLength, KeySize, len(key))
	}

	return &SigningKey{Key: key}, nil
}

// LoadWrappedSigningKeyFromEnv reads the KMS-wrapped signing key ciphertext
// from SHIELD_SIGNING_KEY without decoding it as key material. The returned
// bytes are the base64-decoded ciphertext to hand to a KMS keeper.
func LoadWrappedSigningKeyFromEnv() ([]byte, error) {
	raw := os.Getenv("SHIELD_SIGNING_KEY")
	if raw == "" {
		return nil, ErrSigningKeyNotSet
	}

	wrapped, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSigningKeyBase64, err)
	}

	return wrapped, nil
}
