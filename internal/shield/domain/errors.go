package domain

import (
	"fmt"

	"github.com/vaultshield/vaultshield/internal/errors"
)

// Verification error definitions.
var (
	// ErrVerificationFailed indicates the shield rejected a request. The
	// wrapping VerificationError carries which stage failed and why.
	//
	// HTTP Status: 403 Forbidden
	ErrVerificationFailed = errors.Wrap(errors.ErrForbidden, "verification failed")

	// ErrSignatureInvalid indicates a verification log record whose HMAC
	// signature does not match its content, meaning the record was tampered
	// with or signed with a different key.
	ErrSignatureInvalid = errors.New("verification record signature invalid")
)

// VerificationError reports a shield pipeline rejection.
//
// It carries the first failing stage and its machine-readable reason so
// callers can distinguish rejections without parsing messages. Unwraps to
// ErrVerificationFailed and, through it, to errors.ErrForbidden.
type VerificationError struct {
	Stage  Stage
	Reason string
}

// Error implements the error interface.
func (e *VerificationError) Error() string {
	return fmt.Sprintf("verification failed at stage %s: %s", e.Stage, e.Reason)
}

// Unwrap makes errors.Is(err, ErrVerificationFailed) hold.
func (e *VerificationError) Unwrap() error {
	return ErrVerificationFailed
}

// NewVerificationError creates a VerificationError for a failed stage.
func NewVerificationError(stage Stage) *VerificationError {
	return &VerificationError{
		Stage:  stage,
		Reason: stage.Reason(),
	}
}
