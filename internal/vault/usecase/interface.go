// Package usecase implements the vault request/response contract over the
// cryptographic engine.
//
// The vault turns the engine's primitives into self-contained
// EncryptedPackage values: encryption generates a fresh random nonce per
// call, computes a detached HMAC-SHA256 integrity tag over the ciphertext,
// and stamps the current UTC time. Decryption verifies the detached tag
// before the AEAD path runs, so corrupted packages are rejected cheaply
// without exercising the cipher.
//
// The vault owns no long-lived key material: keys arrive per call inside a
// KeyContext and are never cached. Plaintext is never logged.
package usecase

import (
	"context"

	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"
)

// VaultUseCase defines the vault encryption contract.
type VaultUseCase interface {
	// Encrypt encrypts plaintext with a fresh random nonce and returns a
	// self-contained package.
	Encrypt(ctx context.Context, plaintext []byte, keyCtx *cryptoDomain.KeyContext) (*cryptoDomain.EncryptedPackage, error)

	// EncryptWithNonce encrypts with a caller-supplied nonce. Callers own
	// nonce freshness on this path: reusing a nonce with the same key
	// breaks the cipher's guarantees. Prefer Encrypt.
	EncryptWithNonce(ctx context.Context, plaintext []byte, keyCtx *cryptoDomain.KeyContext, nonce []byte) (*cryptoDomain.EncryptedPackage, error)

	// Decrypt verifies the package's detached integrity tag, then
	// AEAD-decrypts. Tag mismatch surfaces as ErrIntegrityViolation before
	// decryption is attempted; AEAD failure as ErrAuthenticationFailed.
	Decrypt(ctx context.Context, pkg *cryptoDomain.EncryptedPackage, keyCtx *cryptoDomain.KeyContext) ([]byte, error)

	// Verify reports whether tag is a valid HMAC-SHA256 tag for message.
	Verify(ctx context.Context, message []byte, keyCtx *cryptoDomain.KeyContext, tag []byte) (bool, error)

	// Sign produces a base64-encoded HMAC signature for an identifier.
	Sign(ctx context.Context, identifier string, keyCtx *cryptoDomain.KeyContext) (string, error)

	// VerifySignature checks a signature produced by Sign; fails closed on
	// malformed input.
	VerifySignature(ctx context.Context, identifier, signature string, keyCtx *cryptoDomain.KeyContext) (bool, error)

	// DeriveKey stretches a password into key material with PBKDF2.
	DeriveKey(ctx context.Context, password string, salt []byte, length, iterations int) ([]byte, error)
}
