// Package repository provides verification log persistence: an in-memory
// append-only log for single-process deployments and SQL-backed logs for
// PostgreSQL and MySQL.
package repository

import (
	"context"
	"sync"
	"time"

	shieldDomain "github.com/vaultshield/vaultshield/internal/shield/domain"
)

// MemoryVerificationLogRepository is the default in-memory verification log.
//
// Appends are guarded by a mutex so concurrent callers never lose records or
// interleave partial writes. Records are append-only; the only removal path
// is the retention command's DeleteOlderThan.
type MemoryVerificationLogRepository struct {
	mu      sync.Mutex
	records []*shieldDomain.VerificationRecord
}

// NewMemoryVerificationLogRepository creates an empty in-memory log.
func NewMemoryVerificationLogRepository() *MemoryVerificationLogRepository {
	return &MemoryVerificationLogRepository{}
}

// Create appends a record to the log.
func (m *MemoryVerificationLogRepository) Create(_ context.Context, record *shieldDomain.VerificationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, record)
	return nil
}

// List returns records newest first with offset/limit pagination.
func (m *MemoryVerificationLogRepository) List(
	_ context.Context,
	offset, limit int,
) ([]*shieldDomain.VerificationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*shieldDomain.VerificationRecord, 0, limit)
	for i := len(m.records) - 1 - offset; i >= 0 && len(result) < limit; i-- {
		result = append(result, m.records[i])
	}
	return result, nil
}

// Count returns the total number of records in the log.
func (m *MemoryVerificationLogRepository) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return int64(len(m.records)), nil
}

// LastCreatedAt returns the timestamp of the most recent record, or nil for
// an empty log.
func (m *MemoryVerificationLogRepository) LastCreatedAt(_ context.Context) (*time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.records) == 0 {
		return nil, nil
	}
	last := m.records[len(m.records)-1].CreatedAt
	return &last, nil
}

// CountOlderThan returns how many records were created before the cutoff.
func (m *MemoryVerificationLogRepository) CountOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, record := range m.records {
		if record.CreatedAt.Before(cutoff) {
			count++
		}
	}
	return count, nil
}

// DeleteOlderThan removes records created before the cutoff and returns how
// many were removed. Used only by the retention command.
func (m *MemoryVerificationLogRepository) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.records[:0]
	var removed int64
	for _, record := range m.records {
		if record.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, record)
	}
	m.records = kept
	return removed, nil
}
