package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"
	"github.com/vaultshield/vaultshield/internal/metrics"
)

// vaultUseCaseWithMetrics decorates VaultUseCase with metrics instrumentation.
type vaultUseCaseWithMetrics struct {
	next    VaultUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultUseCaseWithMetrics wraps a VaultUseCase with metrics recording.
func NewVaultUseCaseWithMetrics(useCase VaultUseCase, m metrics.BusinessMetrics) VaultUseCase {
	return &vaultUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (v *vaultUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	v.metrics.RecordOperation(ctx, "vault", operation, status)
	v.metrics.RecordDuration(ctx, "vault", operation, time.Since(start), status)
}

// Encrypt records metrics for encryption operations.
func (v *vaultUseCaseWithMetrics) Encrypt(
	ctx context.Context,
	plaintext []byte,
	keyCtx *cryptoDomain.KeyContext,
) (*cryptoDomain.EncryptedPackage, error) {
	start := time.Now()
	pkg, err := v.next.Encrypt(ctx, plaintext, keyCtx)
	v.record(ctx, "vault_encrypt", start, err)
	return pkg, err
}

// EncryptWithNonce records metrics for caller-nonce encryption operations.
func (v *vaultUseCaseWithMetrics) EncryptWithNonce(
	ctx context.Context,
	plaintext []byte,
	keyCtx *cryptoDomain.KeyContext,
	nonce []byte,
) (*cryptoDomain.EncryptedPackage, error) {
	start := time.Now()
	pkg, err := v.next.EncryptWithNonce(ctx, plaintext, keyCtx, nonce)
	v.record(ctx, "vault_encrypt_with_nonce", start, err)
	return pkg, err
}

// Decrypt records metrics for decryption operations.
func (v *vaultUseCaseWithMetrics) Decrypt(
	ctx context.Context,
	pkg *cryptoDomain.EncryptedPackage,
	keyCtx *cryptoDomain.KeyContext,
) ([]byte, error) {
	start := time.Now()
	plaintext, err := v.next.Decrypt(ctx, pkg, keyCtx)
	v.record(ctx, "vault_decrypt", start, err)
	return plaintext, err
}

// Verify records metrics for HMAC verification operations.
func (v *vaultUseCaseWithMetrics) Verify(
	ctx context.Context,
	message []byte,
	keyCtx *cryptoDomain.KeyContext,
	tag []byte,
) (bool, error) {
	start := time.Now()
	valid, err := v.next.Verify(ctx, message, keyCtx, tag)
	v.record(ctx, "vault_verify", start, err)
	return valid, err
}

// Sign records metrics for signing operations.
func (v *vaultUseCaseWithMetrics) Sign(
	ctx context.Context,
	identifier string,
	keyCtx *cryptoDomain.KeyContext,
) (string, error) {
	start := time.Now()
	sig, err := v.next.Sign(ctx, identifier, keyCtx)
	v.record(ctx, "vault_sign", start, err)
	return sig, err
}

// VerifySignature records metrics for signature verification operations.
func (v *vaultUseCaseWithMetrics) VerifySignature(
	ctx context.Context,
	identifier, signature string,
	keyCtx *cryptoDomain.KeyContext,
) (bool, error) {
	start := time.Now()
	valid, err := v.next.VerifySignature(ctx, identifier, signature, keyCtx)
	v.record(ctx, "vault_verify_signature", start, err)
	return valid, err
}

// DeriveKey records metrics for key derivation operations.
func (v *vaultUseCaseWithMetrics) DeriveKey(
	ctx context.Context,
	password string,
	salt []byte,
	length, iterations int,
) ([]byte, error) {
	start := time.Now()
	key, err := v.next.DeriveKey(ctx, password, salt, length, iterations)
	v.record(ctx, "vault_derive_key", start, err)
	return key, err
}
