// Package service implements the stateless cryptographic primitives:
// ChaCha20-Poly1305 authenticated encryption, HMAC-SHA256 message
// authentication, PBKDF2 key derivation, and HMAC-based identifier signing.
package service

import (
	"context"

	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"
)

// Engine defines the primitive cryptographic operations.
//
// Every operation is a pure, bounded-time computation with no I/O and no
// internal state; implementations are safe for concurrent use provided each
// call receives its own key and buffer material.
type Engine interface {
	// Encrypt performs ChaCha20-Poly1305 AEAD encryption of plaintext with
	// the given 32-byte key and 12-byte nonce. The returned ciphertext
	// embeds the Poly1305 authentication tag.
	Encrypt(plaintext, key, nonce []byte) ([]byte, error)

	// Decrypt reverses Encrypt. Any tag mismatch (tampered ciphertext,
	// wrong key, or wrong nonce) surfaces as the single opaque
	// ErrAuthenticationFailed.
	Decrypt(ciphertext, key, nonce []byte) ([]byte, error)

	// HMAC computes a deterministic HMAC-SHA256 tag over message.
	HMAC(message, key []byte) []byte

	// VerifyHMAC reports whether tag authenticates message under key,
	// using a constant-time comparison.
	VerifyHMAC(message, key, tag []byte) bool

	// DeriveKey stretches a password into key material with
	// PBKDF2-HMAC-SHA256. Identical inputs always produce identical output.
	// Iteration counts below MinKDFIterations are rejected.
	DeriveKey(password string, salt []byte, length, iterations int) ([]byte, error)

	// Sign produces a base64-encoded HMAC-SHA256 signature binding an
	// identifier string to the key holder.
	Sign(identifier string, key []byte) string

	// VerifySignature checks a signature produced by Sign. It fails closed:
	// malformed base64 yields false, never an error.
	VerifySignature(identifier, signature string, key []byte) bool

	// GenerateKey returns a fresh random 32-byte key.
	GenerateKey() ([]byte, error)

	// GenerateNonce returns a fresh random 12-byte nonce.
	GenerateNonce() ([]byte, error)
}

// KMSService opens KMS keepers for signing key unwrapping using gocloud.dev/secrets.
type KMSService interface {
	// OpenKeeper opens a secrets.Keeper for the configured KMS provider.
	// Returns an error if the KMS provider URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}
