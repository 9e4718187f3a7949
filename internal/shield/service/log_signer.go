package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"
	shieldDomain "github.com/vaultshield/vaultshield/internal/shield/domain"
)

type logSigner struct{}

// NewLogSigner creates a new HMAC-based verification log signer using
// HKDF-SHA256 for key derivation and HMAC-SHA256 for signature generation.
func NewLogSigner() LogSigner {
	return &logSigner{}
}

// deriveSigningKey uses HKDF-SHA256 to derive a 32-byte signing key from the
// server key. Separates the server key from its signing use so the same key
// material can never be confused with an encryption key.
// Info parameter: "verification-log-signing-v1" (versioned for future algorithm changes).
func (s *logSigner) deriveSigningKey(serverKey []byte) ([]byte, error) {
	info := []byte("verification-log-signing-v1")
	hkdfReader := hkdf.New(sha256.New, serverKey, nil, info)

	signingKey := make([]byte, 32)
	if _, err := io.ReadFull(hkdfReader, signingKey); err != nil {
		return nil, err
	}

	return signingKey, nil
}

// canonicalizeRecord converts a verification record to its canonical byte
// representation for signing.
// Format: id || request_type || user_context || status || reason || created_at
// Uses length-prefixed encoding for variable-length fields to prevent ambiguity.
func (s *logSigner) canonicalizeRecord(record *shieldDomain.VerificationRecord) ([]byte, error) {
	buf := make([]byte, 0, 256)

	buf = append(buf, record.ID[:]...)
	buf = appendLengthPrefixed(buf, []byte(record.RequestType))

	if record.UserContext != nil {
		contextBytes, err := json.Marshal(record.UserContext)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal user context: %w", err)
		}
		buf = appendLengthPrefixed(buf, contextBytes)
	} else {
		buf = appendLengthPrefixed(buf, nil)
	}

	buf = appendLengthPrefixed(buf, []byte(record.Status))
	buf = appendLengthPrefixed(buf, []byte(record.Reason))

	// Microsecond resolution: the SQL backends store created_at as
	// TIMESTAMPTZ/TIMESTAMP(6), so a signature over nanoseconds would not
	// survive a persistence round trip.
	timeBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(timeBytes, uint64(record.CreatedAt.UnixMicro()))
	buf = append(buf, timeBytes...)

	return buf, nil
}

// appendLengthPrefixed adds a 4-byte big-endian length prefix followed by data.
// Format: [length (4 bytes)] + [data (length bytes)]
// Panics if data length exceeds uint32 max (4GB) to prevent integer overflow.
func appendLengthPrefixed(buf []byte, data []byte) []byte {
	dataLen := len(data)
	if dataLen > 0xFFFFFFFF {
		panic("data length exceeds uint32 max (4GB)")
	}
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(dataLen))
	buf = append(buf, length...)
	buf = append(buf, data...)
	return buf
}

// Sign generates an HMAC-SHA256 signature for the verification record.
// Returns a 32-byte signature or an error if signing fails.
func (s *logSigner) Sign(serverKey []byte, record *shieldDomain.VerificationRecord) ([]byte, error) {
	signingKey, err := s.deriveSigningKey(serverKey)
	if err != nil {
		return nil, fmt.Errorf("failed to derive signing key: %w", err)
	}
	defer cryptoDomain.Zero(signingKey)

	canonical, err := s.canonicalizeRecord(record)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize record: %w", err)
	}

	mac := hmac.New(sha256.New, signingKey)
	mac.Write(canonical)
	return mac.Sum(nil), nil
}

// Verify checks if the verification record signature is valid.
// Returns nil if valid, ErrSignatureInvalid if tampered or invalid.
func (s *logSigner) Verify(serverKey []byte, record *shieldDomain.VerificationRecord) error {
	expected, err := s.Sign(serverKey, record)
	if err != nil {
		return fmt.Errorf("failed to compute expected signature: %w", err)
	}

	if !hmac.Equal(expected, record.Signature) {
		return shieldDomain.ErrSignatureInvalid
	}

	return nil
}
