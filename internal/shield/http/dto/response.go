// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	"github.com/vaultshield/vaultshield/internal/crypto/codec"
	shieldDomain "github.com/vaultshield/vaultshield/internal/shield/domain"
)

// StatusResponse reports shield identity and verification log statistics.
type StatusResponse struct {
	Name               string     `json:"name"`
	Version            string     `json:"version"`
	Active             bool       `json:"active"`
	TotalVerifications int64      `json:"total_verifications"`
	LastVerification   *time.Time `json:"last_verification,omitempty"`
}

// MapStatusToResponse converts a domain shield status to an API response.
func MapStatusToResponse(status *shieldDomain.ShieldStatus) StatusResponse {
	return StatusResponse{
		Name:               status.Name,
		Version:            status.Version,
		Active:             status.Active,
		TotalVerifications: status.TotalVerifications,
		LastVerification:   status.LastVerification,
	}
}

// VerificationRecordResponse represents a verification log entry in API
// responses. The signature is base64 encoded.
type VerificationRecordResponse struct {
	ID          string         `json:"id"`
	RequestType string         `json:"request_type"`
	UserContext map[string]any `json:"user_context,omitempty"`
	Status      string         `json:"status"`
	Reason      string         `json:"reason,omitempty"`
	Signature   string         `json:"signature"`
	CreatedAt   time.Time      `json:"created_at"`
}

// MapVerificationRecordToResponse converts a domain record to an API response.
func MapVerificationRecordToResponse(record *shieldDomain.VerificationRecord) VerificationRecordResponse {
	return VerificationRecordResponse{
		ID:          record.ID.String(),
		RequestType: string(record.RequestType),
		UserContext: record.UserContext,
		Status:      string(record.Status),
		Reason:      record.Reason,
		Signature:   codec.EncodeSignature(record.Signature),
		CreatedAt:   record.CreatedAt,
	}
}

// ListVerificationsResponse represents a paginated page of the verification log.
type ListVerificationsResponse struct {
	Data []VerificationRecordResponse `json:"data"`
}

// MapVerificationRecordsToListResponse converts domain records to a list API response.
func MapVerificationRecordsToListResponse(records []*shieldDomain.VerificationRecord) ListVerificationsResponse {
	recordResponses := make([]VerificationRecordResponse, 0, len(records))
	for _, record := range records {
		recordResponses = append(recordResponses, MapVerificationRecordToResponse(record))
	}
	return ListVerificationsResponse{
		Data: recordResponses,
	}
}
