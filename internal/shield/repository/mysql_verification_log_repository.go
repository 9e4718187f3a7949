package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	apperrors "github.com/vaultshield/vaultshield/internal/errors"
	shieldDomain "github.com/vaultshield/vaultshield/internal/shield/domain"
)

// MySQLVerificationLogRepository implements verification log persistence for
// MySQL. UUIDs are stored as BINARY(16); queries use ? placeholders.
type MySQLVerificationLogRepository struct {
	db *sql.DB
}

// NewMySQLVerificationLogRepository creates a MySQL-backed log.
func NewMySQLVerificationLogRepository(db *sql.DB) *MySQLVerificationLogRepository {
	return &MySQLVerificationLogRepository{db: db}
}

// Create inserts a new verification record. Handles nil user context as
// database NULL. Records are never updated after insertion.
func (m *MySQLVerificationLogRepository) Create(
	ctx context.Context,
	record *shieldDomain.VerificationRecord,
) error {
	var contextJSON []byte
	var err error
	if record.UserContext != nil {
		contextJSON, err = json.Marshal(record.UserContext)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal user context")
		}
	}

	query := `INSERT INTO verification_records (id, request_type, user_context, status, reason, signature, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = m.db.ExecContext(
		ctx,
		query,
		record.ID[:],
		string(record.RequestType),
		contextJSON,
		string(record.Status),
		record.Reason,
		record.Signature,
		record.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create verification record")
	}

	return nil
}

// List retrieves records ordered by ID descending (newest first, UUIDv7 IDs
// are time-ordered) with offset/limit pagination.
func (m *MySQLVerificationLogRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*shieldDomain.VerificationRecord, error) {
	query := `SELECT id, request_type, user_context, status, reason, signature, created_at
			  FROM verification_records
			  ORDER BY id DESC
			  LIMIT ? OFFSET ?`

	rows, err := m.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list verification records")
	}
	defer func() {
		_ = rows.Close()
	}()

	records := make([]*shieldDomain.VerificationRecord, 0)
	for rows.Next() {
		record, err := scanMySQLVerificationRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate verification records")
	}

	return records, nil
}

// Count returns the total number of records in the log.
func (m *MySQLVerificationLogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM verification_records`).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count verification records")
	}
	return count, nil
}

// LastCreatedAt returns the timestamp of the most recent record, or nil for
// an empty log.
func (m *MySQLVerificationLogRepository) LastCreatedAt(ctx context.Context) (*time.Time, error) {
	var createdAt time.Time
	err := m.db.QueryRowContext(
		ctx,
		`SELECT created_at FROM verification_records ORDER BY id DESC LIMIT 1`,
	).Scan(&createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get last verification record")
	}
	return &createdAt, nil
}

// CountOlderThan returns how many records were created before the cutoff.
func (m *MySQLVerificationLogRepository) CountOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var count int64
	err := m.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM verification_records WHERE created_at < ?`,
		cutoff,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count old verification records")
	}
	return count, nil
}

// DeleteOlderThan removes records created before the cutoff and returns how
// many were removed. Used only by the retention command.
func (m *MySQLVerificationLogRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := m.db.ExecContext(
		ctx,
		`DELETE FROM verification_records WHERE created_at < ?`,
		cutoff,
	)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete verification records")
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to read affected rows")
	}
	return removed, nil
}

func scanMySQLVerificationRecord(s scanner) (*shieldDomain.VerificationRecord, error) {
	var record shieldDomain.VerificationRecord
	var id []byte
	var requestType, status string
	var contextJSON []byte

	err := s.Scan(
		&id,
		&requestType,
		&contextJSON,
		&status,
		&record.Reason,
		&record.Signature,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to scan verification record")
	}

	copy(record.ID[:], id)
	record.RequestType = shieldDomain.RequestType(requestType)
	record.Status = shieldDomain.Status(status)

	if contextJSON != nil {
		if err := json.Unmarshal(contextJSON, &record.UserContext); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal user context")
		}
	}

	return &record, nil
}
