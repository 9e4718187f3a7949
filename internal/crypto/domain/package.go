package domain

import (
	"time"

	"github.com/vaultshield/vaultshield/internal/errors"
)

// EncryptedPackage is the self-contained result of a vault encryption.
//
// It carries everything needed to decrypt and verify the data except the
// key itself: the AEAD ciphertext (with its embedded Poly1305 tag), the
// nonce used for the encryption, and a detached HMAC-SHA256 tag computed
// over the ciphertext with the same key. The detached tag is a second,
// independent integrity layer: it is verified before AEAD decryption is
// attempted, so tampered packages are rejected without exercising the
// cipher.
//
// Packages are immutable once created. The core never persists them; their
// lifecycle ends when the caller discards them.
//
// Fields:
//   - Ciphertext: AEAD output, plaintext length + 16 bytes of Poly1305 tag
//   - Nonce: the 12-byte nonce used for this encryption
//   - IntegrityTag: detached HMAC-SHA256 over Ciphertext
//   - CreatedAt: UTC timestamp stamped at encryption time
type EncryptedPackage struct {
	Ciphertext   []byte
	Nonce        []byte
	IntegrityTag []byte
	CreatedAt    time.Time
}

// Validate checks that the package has the shape a vault encryption produces.
//
// Returns:
//   - ErrInvalidInput wrapped error if the ciphertext is empty
//   - ErrInvalidNonceLength if the nonce is not exactly 12 bytes
//   - ErrIntegrityViolation if the detached tag is not exactly 32 bytes,
//     since a tag of any other length cannot possibly verify
func (p *EncryptedPackage) Validate() error {
	if len(p.Ciphertext) == 0 {
		return errors.Wrap(errors.ErrInvalidInput, "ciphertext must not be empty")
	}
	if len(p.Nonce) != NonceSize {
		return ErrInvalidNonceLength
	}
	if len(p.IntegrityTag) != TagSize {
		return ErrIntegrityViolation
	}
	return nil
}
