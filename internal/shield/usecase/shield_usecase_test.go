package usecase

import (
	"context"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"
	cryptoService "github.com/vaultshield/vaultshield/internal/crypto/service"
	shieldDomain "github.com/vaultshield/vaultshield/internal/shield/domain"
	shieldRepository "github.com/vaultshield/vaultshield/internal/shield/repository"
	shieldService "github.com/vaultshield/vaultshield/internal/shield/service"
	vaultUseCase "github.com/vaultshield/vaultshield/internal/vault/usecase"
)

// stubCheck is a pipeline stage with a scripted outcome that counts its
// invocations.
type stubCheck struct {
	stage shieldDomain.Stage
	pass  bool
	calls int
}

func (c *stubCheck) Stage() shieldDomain.Stage {
	return c.stage
}

func (c *stubCheck) Verify(_ *shieldDomain.Request) bool {
	c.calls++
	return c.pass
}

type shieldFixture struct {
	shield    ShieldUseCase
	repo      *shieldRepository.MemoryVerificationLogRepository
	signer    shieldService.LogSigner
	key       *cryptoDomain.SigningKey
	integrity *stubCheck
	access    *stubCheck
	policy    *stubCheck
}

func newShieldFixture(t *testing.T, integrityPass, accessPass, policyPass bool) *shieldFixture {
	t.Helper()

	keyBytes := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(keyBytes)
	require.NoError(t, err)

	f := &shieldFixture{
		repo:      shieldRepository.NewMemoryVerificationLogRepository(),
		signer:    shieldService.NewLogSigner(),
		key:       &cryptoDomain.SigningKey{Key: keyBytes},
		integrity: &stubCheck{stage: shieldDomain.StageIntegrityCheck, pass: integrityPass},
		access:    &stubCheck{stage: shieldDomain.StageAccessRights, pass: accessPass},
		policy:    &stubCheck{stage: shieldDomain.StageSecurityPolicy, pass: policyPass},
	}

	vault := vaultUseCase.NewVaultUseCase(cryptoService.NewEngine())
	f.shield = NewShieldUseCase(
		vault,
		f.repo,
		f.signer,
		f.key,
		[]shieldDomain.Check{f.integrity, f.access, f.policy},
	)
	return f
}

func testKeyContext(t *testing.T) *cryptoDomain.KeyContext {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return &cryptoDomain.KeyContext{Key: key}
}

func TestShieldVerifyRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("all stages pass", func(t *testing.T) {
		f := newShieldFixture(t, true, true, true)

		ok, record, err := f.shield.VerifyRequest(ctx, &shieldDomain.Request{
			Type: shieldDomain.RequestTypeWrite,
		})
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, shieldDomain.StatusVerified, record.Status)
		assert.Empty(t, record.Reason)

		assert.Equal(t, 1, f.integrity.calls)
		assert.Equal(t, 1, f.access.calls)
		assert.Equal(t, 1, f.policy.calls)
	})

	t.Run("integrity failure short-circuits later stages", func(t *testing.T) {
		f := newShieldFixture(t, false, true, true)

		ok, record, err := f.shield.VerifyRequest(ctx, &shieldDomain.Request{
			Type: shieldDomain.RequestTypeWrite,
		})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, shieldDomain.StatusFailed, record.Status)
		assert.Equal(t, "integrity_check_violation", record.Reason)

		assert.Equal(t, 1, f.integrity.calls)
		assert.Equal(t, 0, f.access.calls)
		assert.Equal(t, 0, f.policy.calls)
	})

	t.Run("access rights failure carries its reason", func(t *testing.T) {
		f := newShieldFixture(t, true, false, true)

		ok, record, err := f.shield.VerifyRequest(ctx, &shieldDomain.Request{
			Type:        shieldDomain.RequestTypeWrite,
			UserContext: map[string]any{"client": "unauthorized"},
		})
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, shieldDomain.StatusFailed, record.Status)
		assert.Equal(t, "access_rights_violation", record.Reason)
		assert.Equal(t, 0, f.policy.calls)

		// Exactly one record appended, and it is the failed one.
		records, err := f.repo.List(ctx, 0, 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, shieldDomain.StatusFailed, records[0].Status)
	})

	t.Run("record is appended and signed", func(t *testing.T) {
		f := newShieldFixture(t, true, true, true)

		_, record, err := f.shield.VerifyRequest(ctx, &shieldDomain.Request{
			Type: shieldDomain.RequestTypeRead,
		})
		require.NoError(t, err)

		count, err := f.repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		assert.NoError(t, f.signer.Verify(f.key.Key, record))
	})
}

func TestShieldEncryptDecryptData(t *testing.T) {
	ctx := context.Background()

	t.Run("round trip through the gate", func(t *testing.T) {
		f := newShieldFixture(t, true, true, true)
		keyCtx := testKeyContext(t)
		plaintext := []byte("gated data")

		pkg, err := f.shield.EncryptData(ctx, plaintext, keyCtx, map[string]any{"client": "cli"})
		require.NoError(t, err)

		got, err := f.shield.DecryptData(ctx, pkg, keyCtx, map[string]any{"client": "cli"})
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)

		// One record per gated operation.
		count, err := f.repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("rejected write never reaches the vault", func(t *testing.T) {
		f := newShieldFixture(t, true, false, true)

		_, err := f.shield.EncryptData(ctx, []byte("data"), testKeyContext(t), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, shieldDomain.ErrVerificationFailed)

		var verr *shieldDomain.VerificationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, shieldDomain.StageAccessRights, verr.Stage)
		assert.Equal(t, "access_rights_violation", verr.Reason)
	})

	t.Run("rejected read never reaches the vault", func(t *testing.T) {
		pass := newShieldFixture(t, true, true, true)
		keyCtx := testKeyContext(t)

		pkg, err := pass.shield.EncryptData(ctx, []byte("data"), keyCtx, nil)
		require.NoError(t, err)

		deny := newShieldFixture(t, true, true, false)
		_, err = deny.shield.DecryptData(ctx, pkg, keyCtx, nil)
		assert.ErrorIs(t, err, shieldDomain.ErrVerificationFailed)
	})

	t.Run("tampered package surfaces integrity violation", func(t *testing.T) {
		f := newShieldFixture(t, true, true, true)
		keyCtx := testKeyContext(t)

		pkg, err := f.shield.EncryptData(ctx, []byte("data"), keyCtx, nil)
		require.NoError(t, err)

		pkg.Ciphertext[0] ^= 0x01
		_, err = f.shield.DecryptData(ctx, pkg, keyCtx, nil)
		assert.ErrorIs(t, err, cryptoDomain.ErrIntegrityViolation)
	})
}

func TestShieldEncryptDataWithNonce(t *testing.T) {
	ctx := context.Background()

	t.Run("uses the supplied nonce", func(t *testing.T) {
		f := newShieldFixture(t, true, true, true)
		keyCtx := testKeyContext(t)
		nonce := make([]byte, cryptoDomain.NonceSize)
		_, err := rand.Read(nonce)
		require.NoError(t, err)

		pkg, err := f.shield.EncryptDataWithNonce(ctx, []byte("data"), keyCtx, nonce, nil)
		require.NoError(t, err)
		assert.Equal(t, nonce, pkg.Nonce)

		got, err := f.shield.DecryptData(ctx, pkg, keyCtx, nil)
		require.NoError(t, err)
		assert.Equal(t, []byte("data"), got)
	})

	t.Run("rejected request performs no cryptographic work", func(t *testing.T) {
		f := newShieldFixture(t, false, true, true)
		nonce := make([]byte, cryptoDomain.NonceSize)

		_, err := f.shield.EncryptDataWithNonce(ctx, []byte("data"), testKeyContext(t), nonce, nil)
		assert.ErrorIs(t, err, shieldDomain.ErrVerificationFailed)
	})
}

func TestShieldCleanVerifications(t *testing.T) {
	ctx := context.Background()

	t.Run("removes old records", func(t *testing.T) {
		f := newShieldFixture(t, true, true, true)

		old := shieldDomain.NewVerificationRecord(shieldDomain.RequestTypeWrite, nil)
		old.Status = shieldDomain.StatusVerified
		old.CreatedAt = old.CreatedAt.AddDate(0, 0, -10)
		require.NoError(t, f.repo.Create(ctx, old))

		_, _, err := f.shield.VerifyRequest(ctx, &shieldDomain.Request{Type: shieldDomain.RequestTypeWrite})
		require.NoError(t, err)

		removed, err := f.shield.CleanVerifications(ctx, 7, false)
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		count, err := f.repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("dry run counts without removing", func(t *testing.T) {
		f := newShieldFixture(t, true, true, true)

		old := shieldDomain.NewVerificationRecord(shieldDomain.RequestTypeWrite, nil)
		old.Status = shieldDomain.StatusVerified
		old.CreatedAt = old.CreatedAt.AddDate(0, 0, -10)
		require.NoError(t, f.repo.Create(ctx, old))

		wouldRemove, err := f.shield.CleanVerifications(ctx, 7, true)
		require.NoError(t, err)
		assert.Equal(t, int64(1), wouldRemove)

		count, err := f.repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestShieldStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("empty log", func(t *testing.T) {
		f := newShieldFixture(t, true, true, true)

		status, err := f.shield.Status(ctx)
		require.NoError(t, err)
		assert.Equal(t, shieldDomain.ShieldName, status.Name)
		assert.Equal(t, shieldDomain.ShieldVersion, status.Version)
		assert.True(t, status.Active)
		assert.Zero(t, status.TotalVerifications)
		assert.Nil(t, status.LastVerification)
	})

	t.Run("reflects log without mutating it", func(t *testing.T) {
		f := newShieldFixture(t, true, true, true)

		_, _, err := f.shield.VerifyRequest(ctx, &shieldDomain.Request{Type: shieldDomain.RequestTypeWrite})
		require.NoError(t, err)

		status, err := f.shield.Status(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), status.TotalVerifications)
		require.NotNil(t, status.LastVerification)

		count, err := f.repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestShieldListVerifications(t *testing.T) {
	ctx := context.Background()
	f := newShieldFixture(t, true, true, true)

	for range 3 {
		_, _, err := f.shield.VerifyRequest(ctx, &shieldDomain.Request{Type: shieldDomain.RequestTypeWrite})
		require.NoError(t, err)
	}

	records, err := f.shield.ListVerifications(ctx, 0, 2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestShieldDefaultChecksPass(t *testing.T) {
	ctx := context.Background()

	keyBytes := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(keyBytes)
	require.NoError(t, err)

	shield := NewShieldUseCase(
		vaultUseCase.NewVaultUseCase(cryptoService.NewEngine()),
		shieldRepository.NewMemoryVerificationLogRepository(),
		shieldService.NewLogSigner(),
		&cryptoDomain.SigningKey{Key: keyBytes},
		nil,
	)

	ok, record, err := shield.VerifyRequest(ctx, &shieldDomain.Request{Type: shieldDomain.RequestTypeWrite})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, shieldDomain.StatusVerified, record.Status)
}
