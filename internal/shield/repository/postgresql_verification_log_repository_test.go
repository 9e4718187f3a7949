package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shieldDomain "github.com/vaultshield/vaultshield/internal/shield/domain"
)

func TestPostgreSQLVerificationLogRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	repo := NewPostgreSQLVerificationLogRepository(db)
	ctx := context.Background()

	t.Run("with user context", func(t *testing.T) {
		record := shieldDomain.NewVerificationRecord(
			shieldDomain.RequestTypeWrite,
			map[string]any{"client": "cli"},
		)
		record.Status = shieldDomain.StatusVerified
		record.Signature = []byte("signature")

		contextJSON, err := json.Marshal(record.UserContext)
		require.NoError(t, err)

		mock.ExpectExec("INSERT INTO verification_records").
			WithArgs(
				record.ID,
				string(record.RequestType),
				contextJSON,
				string(record.Status),
				record.Reason,
				record.Signature,
				record.CreatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, record))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil user context stored as NULL", func(t *testing.T) {
		record := shieldDomain.NewVerificationRecord(shieldDomain.RequestTypeRead, nil)
		record.Status = shieldDomain.StatusFailed
		record.Reason = "access_rights_violation"
		record.Signature = []byte("signature")

		mock.ExpectExec("INSERT INTO verification_records").
			WithArgs(
				record.ID,
				string(record.RequestType),
				nil,
				string(record.Status),
				record.Reason,
				record.Signature,
				record.CreatedAt,
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, record))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLVerificationLogRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	repo := NewPostgreSQLVerificationLogRepository(db)
	ctx := context.Background()

	record := shieldDomain.NewVerificationRecord(
		shieldDomain.RequestTypeWrite,
		map[string]any{"client": "cli"},
	)
	record.Status = shieldDomain.StatusVerified
	record.Signature = []byte("signature")

	contextJSON, err := json.Marshal(record.UserContext)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{
		"id", "request_type", "user_context", "status", "reason", "signature", "created_at",
	}).AddRow(
		record.ID,
		string(record.RequestType),
		contextJSON,
		string(record.Status),
		record.Reason,
		record.Signature,
		record.CreatedAt,
	)

	mock.ExpectQuery("SELECT id, request_type, user_context, status, reason, signature, created_at").
		WithArgs(10, 0).
		WillReturnRows(rows)

	records, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, record.ID, records[0].ID)
	assert.Equal(t, shieldDomain.StatusVerified, records[0].Status)
	assert.Equal(t, "cli", records[0].UserContext["client"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLVerificationLogRepository_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	repo := NewPostgreSQLVerificationLogRepository(db)

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLVerificationLogRepository_LastCreatedAt(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	repo := NewPostgreSQLVerificationLogRepository(db)
	ctx := context.Background()

	t.Run("empty log returns nil", func(t *testing.T) {
		mock.ExpectQuery("SELECT created_at FROM verification_records").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}))

		last, err := repo.LastCreatedAt(ctx)
		require.NoError(t, err)
		assert.Nil(t, last)
	})

	t.Run("returns newest timestamp", func(t *testing.T) {
		now := time.Now().UTC()
		mock.ExpectQuery("SELECT created_at FROM verification_records").
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

		last, err := repo.LastCreatedAt(ctx)
		require.NoError(t, err)
		require.NotNil(t, last)
		assert.Equal(t, now, *last)
	})
}

func TestPostgreSQLVerificationLogRepository_CountOlderThan(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	repo := NewPostgreSQLVerificationLogRepository(db)
	cutoff := time.Now().UTC().Add(-30 * 24 * time.Hour)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM verification_records WHERE created_at").
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := repo.CountOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLVerificationLogRepository_DeleteOlderThan(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() {
		_ = db.Close()
	}()

	repo := NewPostgreSQLVerificationLogRepository(db)
	cutoff := time.Now().UTC().Add(-30 * 24 * time.Hour)

	mock.ExpectExec("DELETE FROM verification_records").
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 7))

	removed, err := repo.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(7), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
