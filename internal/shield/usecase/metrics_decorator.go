package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"
	"github.com/vaultshield/vaultshield/internal/metrics"
	shieldDomain "github.com/vaultshield/vaultshield/internal/shield/domain"
)

// shieldUseCaseWithMetrics decorates ShieldUseCase with metrics instrumentation.
type shieldUseCaseWithMetrics struct {
	next    ShieldUseCase
	metrics metrics.BusinessMetrics
}

// NewShieldUseCaseWithMetrics wraps a ShieldUseCase with metrics recording.
func NewShieldUseCaseWithMetrics(useCase ShieldUseCase, m metrics.BusinessMetrics) ShieldUseCase {
	return &shieldUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *shieldUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	s.metrics.RecordOperation(ctx, "shield", operation, status)
	s.metrics.RecordDuration(ctx, "shield", operation, time.Since(start), status)
}

// VerifyRequest records metrics for pipeline verification; a rejected
// request counts by its recorded status, not as an error.
func (s *shieldUseCaseWithMetrics) VerifyRequest(
	ctx context.Context,
	req *shieldDomain.Request,
) (bool, *shieldDomain.VerificationRecord, error) {
	start := time.Now()
	ok, record, err := s.next.VerifyRequest(ctx, req)

	status := "success"
	switch {
	case err != nil:
		status = "error"
	case !ok:
		status = "rejected"
	}
	s.metrics.RecordOperation(ctx, "shield", "shield_verify_request", status)
	s.metrics.RecordDuration(ctx, "shield", "shield_verify_request", time.Since(start), status)

	return ok, record, err
}

// EncryptData records metrics for gated encryption operations.
func (s *shieldUseCaseWithMetrics) EncryptData(
	ctx context.Context,
	data []byte,
	keyCtx *cryptoDomain.KeyContext,
	userContext map[string]any,
) (*cryptoDomain.EncryptedPackage, error) {
	start := time.Now()
	pkg, err := s.next.EncryptData(ctx, data, keyCtx, userContext)
	s.record(ctx, "shield_encrypt_data", start, err)
	return pkg, err
}

// EncryptDataWithNonce records metrics for gated caller-nonce encryption.
func (s *shieldUseCaseWithMetrics) EncryptDataWithNonce(
	ctx context.Context,
	data []byte,
	keyCtx *cryptoDomain.KeyContext,
	nonce []byte,
	userContext map[string]any,
) (*cryptoDomain.EncryptedPackage, error) {
	start := time.Now()
	pkg, err := s.next.EncryptDataWithNonce(ctx, data, keyCtx, nonce, userContext)
	s.record(ctx, "shield_encrypt_data_with_nonce", start, err)
	return pkg, err
}

// DecryptData records metrics for gated decryption operations.
func (s *shieldUseCaseWithMetrics) DecryptData(
	ctx context.Context,
	pkg *cryptoDomain.EncryptedPackage,
	keyCtx *cryptoDomain.KeyContext,
	userContext map[string]any,
) ([]byte, error) {
	start := time.Now()
	plaintext, err := s.next.DecryptData(ctx, pkg, keyCtx, userContext)
	s.record(ctx, "shield_decrypt_data", start, err)
	return plaintext, err
}

// Status records metrics for status reads.
func (s *shieldUseCaseWithMetrics) Status(ctx context.Context) (*shieldDomain.ShieldStatus, error) {
	start := time.Now()
	status, err := s.next.Status(ctx)
	s.record(ctx, "shield_status", start, err)
	return status, err
}

// CleanVerifications records metrics for retention cleanup.
func (s *shieldUseCaseWithMetrics) CleanVerifications(
	ctx context.Context,
	days int,
	dryRun bool,
) (int64, error) {
	start := time.Now()
	removed, err := s.next.CleanVerifications(ctx, days, dryRun)
	s.record(ctx, "shield_clean_verifications", start, err)
	return removed, err
}

// ListVerifications records metrics for log listing.
func (s *shieldUseCaseWithMetrics) ListVerifications(
	ctx context.Context,
	offset, limit int,
) ([]*shieldDomain.VerificationRecord, error) {
	start := time.Now()
	records, err := s.next.ListVerifications(ctx, offset, limit)
	s.record(ctx, "shield_list_verifications", start, err)
	return records, err
}
