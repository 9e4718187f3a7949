package domain

import (
	"github.com/vaultshield/vaultshield/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures. All errors are mapped to
// appropriate HTTP status codes by the error handling layer.
var (
	// ErrInvalidKeyLength indicates a symmetric key of the wrong size.
	//
	// All keys must be exactly 32 bytes (256 bits) for ChaCha20-Poly1305
	// and HMAC-SHA256. The operation is never attempted with a malformed key.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidKeyLength = errors.Wrap(errors.ErrInvalidInput, "invalid key length")

	// ErrInvalidNonceLength indicates a nonce of the wrong size.
	//
	// ChaCha20-Poly1305 requires a 12-byte (96-bit) nonce. The operation is
	// never attempted with a malformed nonce.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrInvalidNonceLength = errors.Wrap(errors.ErrInvalidInput, "invalid nonce length")

	// ErrWeakIterations indicates a PBKDF2 iteration count below the floor.
	//
	// Derivation requests with fewer than MinKDFIterations iterations are
	// rejected. Raising the count silently would return a different key than
	// the caller asked for, so the request fails instead.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrWeakIterations = errors.Wrap(errors.ErrInvalidInput, "iteration count below minimum")

	// ErrAuthenticationFailed indicates an AEAD decryption failure.
	//
	// This error can occur due to:
	//   - Wrong decryption key used
	//   - Ciphertext has been tampered with (Poly1305 tag mismatch)
	//   - Wrong nonce provided
	//
	// For security reasons, the specific cause is not disclosed to prevent
	// information leakage that could aid attackers.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrAuthenticationFailed = errors.Wrap(errors.ErrInvalidInput, "authentication failed")

	// ErrIntegrityViolation indicates a detached HMAC tag mismatch.
	//
	// The detached tag over the ciphertext is verified before AEAD decryption
	// is attempted; a package failing this check never reaches the cipher.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrIntegrityViolation = errors.Wrap(errors.ErrInvalidInput, "integrity violation")

	// ErrDecode indicates malformed hex or base64 input at the wire boundary.
	//
	// HTTP Status: 400 Bad Request
	ErrDecode = errors.Wrap(errors.ErrInvalidInput, "decode error")
)

// Signing key loading error definitions.
var (
	// ErrSigningKeyNotSet indicates the SHIELD_SIGNING_KEY environment
	// variable is not configured.
	ErrSigningKeyNotSet = errors.New("SHIELD_SIGNING_KEY environment variable not set")

	// ErrInvalidSigningKeyBase64 indicates the signing key is not valid base64.
	ErrInvalidSigningKeyBase64 = errors.New("invalid base64 in SHIELD_SIGNING_KEY")
)
