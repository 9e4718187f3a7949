package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"
	cryptoService "github.com/vaultshield/vaultshield/internal/crypto/service"
)

// vaultUseCase implements VaultUseCase over the cryptographic engine.
type vaultUseCase struct {
	engine cryptoService.Engine
}

// NewVaultUseCase creates a new vault use case.
func NewVaultUseCase(engine cryptoService.Engine) VaultUseCase {
	return &vaultUseCase{engine: engine}
}

// Encrypt encrypts plaintext into a self-contained package.
//
// A fresh 12-byte nonce is generated from a secure random source on every
// call, converting the "callers must never reuse a nonce" obligation into a
// structural guarantee. The detached integrity tag is an HMAC-SHA256 over
// the ciphertext with the same key, verified by Decrypt before the cipher
// path runs.
func (v *vaultUseCase) Encrypt(
	ctx context.Context,
	plaintext []byte,
	keyCtx *cryptoDomain.KeyContext,
) (*cryptoDomain.EncryptedPackage, error) {
	nonce, err := v.engine.GenerateNonce()
	if err != nil {
		return nil, err
	}
	return v.EncryptWithNonce(ctx, plaintext, keyCtx, nonce)
}

// EncryptWithNonce encrypts plaintext with a caller-supplied nonce.
//
// This path exists for callers that must control nonces (deterministic
// test vectors, external nonce management). Nonce freshness is entirely the
// caller's obligation here.
func (v *vaultUseCase) EncryptWithNonce(
	_ context.Context,
	plaintext []byte,
	keyCtx *cryptoDomain.KeyContext,
	nonce []byte,
) (*cryptoDomain.EncryptedPackage, error) {
	if err := keyCtx.Validate(); err != nil {
		return nil, err
	}

	ciphertext, err := v.engine.Encrypt(plaintext, keyCtx.Key, nonce)
	if err != nil {
		return nil, err
	}

	return &cryptoDomain.EncryptedPackage{
		Ciphertext:   ciphertext,
		Nonce:        nonce,
		IntegrityTag: v.engine.HMAC(ciphertext, keyCtx.Key),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Decrypt recovers the plaintext from a package.
//
// The detached integrity tag is recomputed and compared first; on mismatch
// the method returns ErrIntegrityViolation without attempting AEAD
// decryption. On match, AEAD decryption runs and any failure surfaces as
// the opaque ErrAuthenticationFailed.
func (v *vaultUseCase) Decrypt(
	_ context.Context,
	pkg *cryptoDomain.EncryptedPackage,
	keyCtx *cryptoDomain.KeyContext,
) ([]byte, error) {
	if err := pkg.Validate(); err != nil {
		return nil, err
	}
	if err := keyCtx.Validate(); err != nil {
		return nil, err
	}

	if !v.engine.VerifyHMAC(pkg.Ciphertext, keyCtx.Key, pkg.IntegrityTag) {
		return nil, cryptoDomain.ErrIntegrityViolation
	}

	return v.engine.Decrypt(pkg.Ciphertext, keyCtx.Key, pkg.Nonce)
}

// Verify reports whether tag authenticates message under the caller's key.
func (v *vaultUseCase) Verify(
	_ context.Context,
	message []byte,
	keyCtx *cryptoDomain.KeyContext,
	tag []byte,
) (bool, error) {
	if err := keyCtx.Validate(); err != nil {
		return false, err
	}
	return v.engine.VerifyHMAC(message, keyCtx.Key, tag), nil
}

// Sign produces a base64-encoded HMAC signature for an identifier.
func (v *vaultUseCase) Sign(
	_ context.Context,
	identifier string,
	keyCtx *cryptoDomain.KeyContext,
) (string, error) {
	if err := keyCtx.Validate(); err != nil {
		return "", err
	}
	return v.engine.Sign(identifier, keyCtx.Key), nil
}

// VerifySignature checks a signature produced by Sign.
func (v *vaultUseCase) VerifySignature(
	_ context.Context,
	identifier, signature string,
	keyCtx *cryptoDomain.KeyContext,
) (bool, error) {
	if err := keyCtx.Validate(); err != nil {
		return false, err
	}
	return v.engine.VerifySignature(identifier, signature, keyCtx.Key), nil
}

// DeriveKey stretches a password into key material with PBKDF2-HMAC-SHA256.
func (v *vaultUseCase) DeriveKey(
	_ context.Context,
	password string,
	salt []byte,
	length, iterations int,
) ([]byte, error) {
	return v.engine.DeriveKey(password, salt, length, iterations)
}
