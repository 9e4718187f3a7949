// Package service provides the shield's supporting services: the shipped
// verification checks and the HMAC-based verification log signer.
package service

import (
	shieldDomain "github.com/vaultshield/vaultshield/internal/shield/domain"
)

// LogSigner signs and verifies verification log records.
//
// Signatures let the verify-log command detect records that were modified
// or forged after being appended.
type LogSigner interface {
	// Sign generates an HMAC-SHA256 signature for the record.
	Sign(signingKey []byte, record *shieldDomain.VerificationRecord) ([]byte, error)

	// Verify checks the record's signature. Returns nil if valid,
	// ErrSignatureInvalid if the record was tampered with.
	Verify(signingKey []byte, record *shieldDomain.VerificationRecord) error
}
