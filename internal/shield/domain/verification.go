// Package domain defines the shield verification pipeline types: requests,
// stages, verification records, and the signed append-only log entries.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a verification.
//
// Every verification starts pending, runs the three stages in order, and
// ends verified or failed. Records are immutable after creation.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusFailed   Status = "failed"
)

// Stage identifies one step of the verification pipeline.
//
// The pipeline order is fixed: integrity (cheapest, structural) before
// access rights (context-dependent) before security policy (most
// expensive). A request failing a stage never reaches the later ones.
type Stage string

const (
	StageIntegrityCheck Stage = "integrity_check"
	StageAccessRights   Stage = "access_rights"
	StageSecurityPolicy Stage = "security_policy"
)

// Reason returns the machine-readable rejection reason recorded when this
// stage fails.
func (s Stage) Reason() string {
	return string(s) + "_violation"
}

// RequestType distinguishes vault writes from reads in the verification log.
type RequestType string

const (
	RequestTypeWrite RequestType = "write"
	RequestTypeRead  RequestType = "read"
)

// Request carries the data and caller context a verification runs against.
//
// Data is the payload the operation will touch (plaintext on writes,
// ciphertext on reads); UserContext is opaque caller-supplied context the
// access and policy stages can inspect.
type Request struct {
	Type        RequestType
	Data        []byte
	UserContext map[string]any
}

// Check is one pluggable verification stage.
//
// Implementations must be pure predicates: no mutation of the request, safe
// for concurrent use. Stages are swappable per shield instance without
// altering the pipeline shape.
type Check interface {
	// Stage identifies where in the pipeline this check runs.
	Stage() Stage

	// Verify reports whether the request passes this stage.
	Verify(req *Request) bool
}

// VerificationRecord is one immutable entry of the append-only
// verification log.
//
// Records are created by the shield before the operation they describe
// returns, never mutated afterwards. Reason is empty for verified records
// and names the first failing stage for failed ones. Signature is an
// HMAC-SHA256 over the canonical record representation, computed with the
// server signing key.
type VerificationRecord struct {
	ID          uuid.UUID
	RequestType RequestType
	UserContext map[string]any
	Status      Status
	Reason      string
	Signature   []byte
	CreatedAt   time.Time
}

// NewVerificationRecord creates a record with a fresh UUIDv7 identifier and
// a UTC timestamp, in the pending state.
//
// The timestamp is truncated to microseconds, the finest resolution the SQL
// backends preserve, so a record compares equal to its persisted copy.
func NewVerificationRecord(requestType RequestType, userContext map[string]any) *VerificationRecord {
	return &VerificationRecord{
		ID:          uuid.Must(uuid.NewV7()),
		RequestType: requestType,
		UserContext: userContext,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}
