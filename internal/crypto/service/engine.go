package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"
	"github.com/vaultshield/vaultshield/internal/errors"
)

// engine implements Engine using ChaCha20-Poly1305 and HMAC-SHA256.
//
// ChaCha20-Poly1305 is a high-speed authenticated encryption algorithm that
// combines the ChaCha20 stream cipher with the Poly1305 MAC for
// authentication. It's particularly efficient on platforms without hardware
// AES acceleration and runs in constant time.
type engine struct{}

// NewEngine creates a new cryptographic engine instance.
func NewEngine() Engine {
	return &engine{}
}

// Encrypt encrypts plaintext using ChaCha20-Poly1305 with the given key and nonce.
//
// The key must be exactly 32 bytes (256 bits) and the nonce exactly 12 bytes
// (96 bits). Nonces must never repeat for the same key; callers that do not
// manage nonce freshness themselves should use GenerateNonce.
//
// Returns the ciphertext, which includes the Poly1305 authentication tag,
// or ErrInvalidKeyLength/ErrInvalidNonceLength for malformed material.
func (e *engine) Encrypt(plaintext, key, nonce []byte) ([]byte, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeyLength
	}
	if len(nonce) != cryptoDomain.NonceSize {
		return nil, cryptoDomain.ErrInvalidNonceLength
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}

	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// Decrypt decrypts ciphertext using ChaCha20-Poly1305 with the given key and nonce.
//
// This method verifies the Poly1305 authentication tag before returning
// plaintext. Verification failure is reported as the single opaque
// ErrAuthenticationFailed regardless of cause (wrong key, wrong nonce, or
// tampered ciphertext), so error messages never reveal which input was bad.
func (e *engine) Decrypt(ciphertext, key, nonce []byte) ([]byte, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeyLength
	}
	if len(nonce) != cryptoDomain.NonceSize {
		return nil, cryptoDomain.ErrInvalidNonceLength
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, cryptoDomain.ErrAuthenticationFailed
	}

	return plaintext, nil
}

// HMAC computes an HMAC-SHA256 tag over message with the given key.
//
// The computation is deterministic: the same (message, key) pair always
// yields the same 32-byte tag.
func (e *engine) HMAC(message, key []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(message)
	return mac.Sum(nil)
}

// VerifyHMAC reports whether tag is a valid HMAC-SHA256 tag for message
// under key. The comparison runs in constant time so timing does not leak
// how many tag bytes matched.
func (e *engine) VerifyHMAC(message, key, tag []byte) bool {
	expected := e.HMAC(message, key)
	return hmac.Equal(expected, tag)
}

// DeriveKey derives key material from a password using PBKDF2-HMAC-SHA256.
//
// The same (password, salt, length, iterations) tuple always derives the
// same key. Higher iteration counts trade latency for brute-force
// resistance; counts below MinKDFIterations are rejected with
// ErrWeakIterations rather than silently raised.
func (e *engine) DeriveKey(password string, salt []byte, length, iterations int) ([]byte, error) {
	if length <= 0 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "derived key length must be positive")
	}
	if iterations < cryptoDomain.MinKDFIterations {
		return nil, fmt.Errorf("%w: %d < %d", cryptoDomain.ErrWeakIterations, iterations, cryptoDomain.MinKDFIterations)
	}

	return pbkdf2.Key([]byte(password), salt, iterations, length, sha256.New), nil
}

// Sign produces a base64-encoded HMAC-SHA256 signature over the UTF-8 bytes
// of identifier. The signature binds the identifier to the key holder
// without encrypting it.
func (e *engine) Sign(identifier string, key []byte) string {
	tag := e.HMAC([]byte(identifier), key)
	return base64.StdEncoding.EncodeToString(tag)
}

// VerifySignature checks a base64-encoded signature produced by Sign.
//
// It fails closed: a signature that does not decode as base64 returns false
// rather than an error, so callers cannot distinguish a malformed signature
// from a forged one.
func (e *engine) VerifySignature(identifier, signature string, key []byte) bool {
	tag, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	return e.VerifyHMAC([]byte(identifier), key, tag)
}

// GenerateKey returns a fresh 32-byte key from a cryptographically secure
// random source.
func (e *engine) GenerateKey() ([]byte, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	return key, nil
}

// GenerateNonce returns a fresh 12-byte nonce from a cryptographically
// secure random source.
func (e *engine) GenerateNonce() ([]byte, error) {
	nonce := make([]byte, cryptoDomain.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}
