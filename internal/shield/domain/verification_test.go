package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/vaultshield/vaultshield/internal/errors"
)

func TestNewVerificationRecord(t *testing.T) {
	record := NewVerificationRecord(RequestTypeWrite, map[string]any{"client": "cli"})

	assert.NotEqual(t, uuid.Nil, record.ID)
	assert.Equal(t, RequestTypeWrite, record.RequestType)
	assert.Equal(t, StatusPending, record.Status)
	assert.Empty(t, record.Reason)
	assert.False(t, record.CreatedAt.IsZero())
	assert.Equal(t, "UTC", record.CreatedAt.Location().String())
	// Matches the microsecond column resolution of the SQL backends.
	assert.Equal(t, record.CreatedAt, record.CreatedAt.Truncate(time.Microsecond))
}

func TestStageReason(t *testing.T) {
	tests := []struct {
		stage  Stage
		reason string
	}{
		{StageIntegrityCheck, "integrity_check_violation"},
		{StageAccessRights, "access_rights_violation"},
		{StageSecurityPolicy, "security_policy_violation"},
	}

	for _, tt := range tests {
		t.Run(string(tt.stage), func(t *testing.T) {
			assert.Equal(t, tt.reason, tt.stage.Reason())
		})
	}
}

func TestVerificationError(t *testing.T) {
	err := NewVerificationError(StageAccessRights)

	assert.Equal(t, StageAccessRights, err.Stage)
	assert.Equal(t, "access_rights_violation", err.Reason)
	assert.ErrorIs(t, err, ErrVerificationFailed)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Contains(t, err.Error(), "access_rights")
}
