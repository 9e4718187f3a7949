package usecase

import (
	"context"
	"fmt"
	"time"

	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"
	shieldDomain "github.com/vaultshield/vaultshield/internal/shield/domain"
	shieldService "github.com/vaultshield/vaultshield/internal/shield/service"
	vaultUseCase "github.com/vaultshield/vaultshield/internal/vault/usecase"
)

// shieldUseCase implements ShieldUseCase.
//
// The pipeline order is fixed at construction: integrity before access
// rights before security policy, cheapest check first. Individual stages
// are swappable through the checks slice without altering the pipeline
// shape; the shipped checks are pass-through extension points.
type shieldUseCase struct {
	vault      vaultUseCase.VaultUseCase
	logRepo    VerificationLogRepository
	signer     shieldService.LogSigner
	signingKey *cryptoDomain.SigningKey
	checks     []shieldDomain.Check
}

// NewShieldUseCase creates a shield over the given vault and log repository.
//
// The checks slice defines the pipeline; passing nil installs the default
// pass-through stages in their canonical order.
func NewShieldUseCase(
	vault vaultUseCase.VaultUseCase,
	logRepo VerificationLogRepository,
	signer shieldService.LogSigner,
	signingKey *cryptoDomain.SigningKey,
	checks []shieldDomain.Check,
) ShieldUseCase {
	if checks == nil {
		checks = []shieldDomain.Check{
			shieldService.NewIntegrityCheck(),
			shieldService.NewAccessRightsCheck(),
			shieldService.NewSecurityPolicyCheck(),
		}
	}
	return &shieldUseCase{
		vault:      vault,
		logRepo:    logRepo,
		signer:     signer,
		signingKey: signingKey,
		checks:     checks,
	}
}

// VerifyRequest runs the pipeline stages in order, short-circuiting at the
// first failure, and appends a signed record of the outcome before
// returning. The record's reason always names the first failing stage.
func (s *shieldUseCase) VerifyRequest(
	ctx context.Context,
	req *shieldDomain.Request,
) (bool, *shieldDomain.VerificationRecord, error) {
	record := shieldDomain.NewVerificationRecord(req.Type, req.UserContext)

	record.Status = shieldDomain.StatusVerified
	for _, check := range s.checks {
		if !check.Verify(req) {
			record.Status = shieldDomain.StatusFailed
			record.Reason = check.Stage().Reason()
			break
		}
	}

	signature, err := s.signer.Sign(s.signingKey.Key, record)
	if err != nil {
		return false, nil, fmt.Errorf("failed to sign verification record: %w", err)
	}
	record.Signature = signature

	if err := s.logRepo.Create(ctx, record); err != nil {
		return false, nil, fmt.Errorf("failed to append verification record: %w", err)
	}

	return record.Status == shieldDomain.StatusVerified, record, nil
}

// EncryptData gates a write operation. Verification runs first; on failure
// the caller receives a VerificationError carrying the failing stage and no
// cryptographic operation is attempted.
func (s *shieldUseCase) EncryptData(
	ctx context.Context,
	data []byte,
	keyCtx *cryptoDomain.KeyContext,
	userContext map[string]any,
) (*cryptoDomain.EncryptedPackage, error) {
	req := &shieldDomain.Request{
		Type:        shieldDomain.RequestTypeWrite,
		Data:        data,
		UserContext: userContext,
	}

	ok, record, err := s.VerifyRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.rejectionError(record)
	}

	return s.vault.Encrypt(ctx, data, keyCtx)
}

// EncryptDataWithNonce gates a write operation that supplies its own nonce.
// The pipeline applies exactly as in EncryptData; the caller owns nonce
// freshness on this path.
func (s *shieldUseCase) EncryptDataWithNonce(
	ctx context.Context,
	data []byte,
	keyCtx *cryptoDomain.KeyContext,
	nonce []byte,
	userContext map[string]any,
) (*cryptoDomain.EncryptedPackage, error) {
	req := &shieldDomain.Request{
		Type:        shieldDomain.RequestTypeWrite,
		Data:        data,
		UserContext: userContext,
	}

	ok, record, err := s.VerifyRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.rejectionError(record)
	}

	return s.vault.EncryptWithNonce(ctx, data, keyCtx, nonce)
}

// DecryptData gates a read operation. Verification runs first; after it
// passes, the vault's two-layer check applies: detached tag mismatch
// surfaces as ErrIntegrityViolation, AEAD failure as
// ErrAuthenticationFailed.
func (s *shieldUseCase) DecryptData(
	ctx context.Context,
	pkg *cryptoDomain.EncryptedPackage,
	keyCtx *cryptoDomain.KeyContext,
	userContext map[string]any,
) ([]byte, error) {
	req := &shieldDomain.Request{
		Type:        shieldDomain.RequestTypeRead,
		Data:        pkg.Ciphertext,
		UserContext: userContext,
	}

	ok, record, err := s.VerifyRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.rejectionError(record)
	}

	return s.vault.Decrypt(ctx, pkg, keyCtx)
}

// Status reports shield identity and log statistics without mutating the log.
func (s *shieldUseCase) Status(ctx context.Context) (*shieldDomain.ShieldStatus, error) {
	total, err := s.logRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count verification records: %w", err)
	}

	last, err := s.logRepo.LastCreatedAt(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get last verification: %w", err)
	}

	return &shieldDomain.ShieldStatus{
		Name:               shieldDomain.ShieldName,
		Version:            shieldDomain.ShieldVersion,
		Active:             true,
		TotalVerifications: total,
		LastVerification:   last,
	}, nil
}

// ListVerifications pages through the log, newest first.
func (s *shieldUseCase) ListVerifications(
	ctx context.Context,
	offset, limit int,
) ([]*shieldDomain.VerificationRecord, error) {
	return s.logRepo.List(ctx, offset, limit)
}

// CleanVerifications removes records older than the given number of days.
// This is the only removal path for the append-only log; it exists for
// retention, never for editing history.
func (s *shieldUseCase) CleanVerifications(ctx context.Context, days int, dryRun bool) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	if dryRun {
		count, err := s.logRepo.CountOlderThan(ctx, cutoff)
		if err != nil {
			return 0, fmt.Errorf("failed to count old verification records: %w", err)
		}
		return count, nil
	}

	removed, err := s.logRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old verification records: %w", err)
	}
	return removed, nil
}

// rejectionError converts a failed record into the typed error callers
// receive.
func (s *shieldUseCase) rejectionError(record *shieldDomain.VerificationRecord) error {
	for _, check := range s.checks {
		if check.Stage().Reason() == record.Reason {
			return shieldDomain.NewVerificationError(check.Stage())
		}
	}
	return shieldDomain.ErrVerificationFailed
}
