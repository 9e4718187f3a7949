// Package usecase implements the shield: the single mandatory choke point
// for all vault traffic.
//
// Every encrypt or decrypt request passes a three-stage verification
// pipeline (integrity, access rights, security policy) in fixed order with
// a short-circuit on the first failing stage. The outcome is recorded as a
// signed VerificationRecord appended to the verification log before the
// operation returns. Only verified requests reach the vault.
package usecase

import (
	"context"
	"time"

	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"
	shieldDomain "github.com/vaultshield/vaultshield/internal/shield/domain"
)

// VerificationLogRepository defines the interface for verification log
// persistence. The log is append-only: records are never mutated, and the
// only removal path is the retention command's DeleteOlderThan.
type VerificationLogRepository interface {
	Create(ctx context.Context, record *shieldDomain.VerificationRecord) error
	List(ctx context.Context, offset, limit int) ([]*shieldDomain.VerificationRecord, error)
	Count(ctx context.Context) (int64, error)
	LastCreatedAt(ctx context.Context) (*time.Time, error)
	CountOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ShieldUseCase defines the verification gate in front of the vault.
type ShieldUseCase interface {
	// VerifyRequest runs the verification pipeline and appends the signed
	// outcome record to the log. The boolean reports whether the request
	// passed; the record carries the first failing stage's reason when it
	// did not. The error is reserved for infrastructure failures (log
	// append, signing); a pipeline rejection alone is not an error here.
	VerifyRequest(ctx context.Context, req *shieldDomain.Request) (bool, *shieldDomain.VerificationRecord, error)

	// EncryptData verifies an implicit write request, then delegates to the
	// vault. On rejection it returns a VerificationError and performs no
	// cryptographic work.
	EncryptData(ctx context.Context, data []byte, keyCtx *cryptoDomain.KeyContext, userContext map[string]any) (*cryptoDomain.EncryptedPackage, error)

	// EncryptDataWithNonce is EncryptData with a caller-supplied nonce. The
	// caller accepts responsibility for nonce freshness.
	EncryptDataWithNonce(ctx context.Context, data []byte, keyCtx *cryptoDomain.KeyContext, nonce []byte, userContext map[string]any) (*cryptoDomain.EncryptedPackage, error)

	// DecryptData verifies an implicit read request, then delegates to the
	// vault. Integrity and authentication failures propagate typed from the
	// vault layer.
	DecryptData(ctx context.Context, pkg *cryptoDomain.EncryptedPackage, keyCtx *cryptoDomain.KeyContext, userContext map[string]any) ([]byte, error)

	// Status reports shield identity and read-only log statistics.
	Status(ctx context.Context) (*shieldDomain.ShieldStatus, error)

	// ListVerifications pages through the verification log, newest first.
	ListVerifications(ctx context.Context, offset, limit int) ([]*shieldDomain.VerificationRecord, error)

	// CleanVerifications removes records older than the given number of days
	// and returns how many were removed. With dryRun it only counts.
	CleanVerifications(ctx context.Context, days int, dryRun bool) (int64, error)
}
