package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shieldDomain "github.com/vaultshield/vaultshield/internal/shield/domain"
)

func newRecord(status shieldDomain.Status) *shieldDomain.VerificationRecord {
	record := shieldDomain.NewVerificationRecord(shieldDomain.RequestTypeWrite, nil)
	record.Status = status
	return record
}

func TestMemoryVerificationLogRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("append and count", func(t *testing.T) {
		repo := NewMemoryVerificationLogRepository()

		require.NoError(t, repo.Create(ctx, newRecord(shieldDomain.StatusVerified)))
		require.NoError(t, repo.Create(ctx, newRecord(shieldDomain.StatusFailed)))

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})

	t.Run("list newest first with pagination", func(t *testing.T) {
		repo := NewMemoryVerificationLogRepository()

		first := newRecord(shieldDomain.StatusVerified)
		second := newRecord(shieldDomain.StatusVerified)
		third := newRecord(shieldDomain.StatusFailed)
		for _, r := range []*shieldDomain.VerificationRecord{first, second, third} {
			require.NoError(t, repo.Create(ctx, r))
		}

		page, err := repo.List(ctx, 0, 2)
		require.NoError(t, err)
		require.Len(t, page, 2)
		assert.Equal(t, third.ID, page[0].ID)
		assert.Equal(t, second.ID, page[1].ID)

		page, err = repo.List(ctx, 2, 2)
		require.NoError(t, err)
		require.Len(t, page, 1)
		assert.Equal(t, first.ID, page[0].ID)
	})

	t.Run("list on empty log", func(t *testing.T) {
		repo := NewMemoryVerificationLogRepository()

		page, err := repo.List(ctx, 0, 10)
		require.NoError(t, err)
		assert.Empty(t, page)
	})

	t.Run("last created at", func(t *testing.T) {
		repo := NewMemoryVerificationLogRepository()

		last, err := repo.LastCreatedAt(ctx)
		require.NoError(t, err)
		assert.Nil(t, last)

		record := newRecord(shieldDomain.StatusVerified)
		require.NoError(t, repo.Create(ctx, record))

		last, err = repo.LastCreatedAt(ctx)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.Equal(t, record.CreatedAt, *last)
	})

	t.Run("delete older than", func(t *testing.T) {
		repo := NewMemoryVerificationLogRepository()

		old := newRecord(shieldDomain.StatusVerified)
		old.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
		recent := newRecord(shieldDomain.StatusVerified)

		require.NoError(t, repo.Create(ctx, old))
		require.NoError(t, repo.Create(ctx, recent))

		removed, err := repo.DeleteOlderThan(ctx, time.Now().UTC().Add(-24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), removed)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("count older than", func(t *testing.T) {
		repo := NewMemoryVerificationLogRepository()

		old := newRecord(shieldDomain.StatusVerified)
		old.CreatedAt = time.Now().UTC().Add(-48 * time.Hour)
		recent := newRecord(shieldDomain.StatusVerified)

		require.NoError(t, repo.Create(ctx, old))
		require.NoError(t, repo.Create(ctx, recent))

		count, err := repo.CountOlderThan(ctx, time.Now().UTC().Add(-24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		total, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("concurrent appends lose nothing", func(t *testing.T) {
		repo := NewMemoryVerificationLogRepository()

		const writers = 16
		const perWriter = 50

		var wg sync.WaitGroup
		for range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range perWriter {
					_ = repo.Create(ctx, newRecord(shieldDomain.StatusVerified))
				}
			}()
		}
		wg.Wait()

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(writers*perWriter), count)
	})
}
