// Package dto provides data transfer objects for HTTP request and response handling.
//
// All binary fields cross the wire as lowercase hexadecimal strings: keys
// are 64 hex characters, nonces 24, integrity tags 64. Signatures travel as
// standard base64.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/vaultshield/vaultshield/internal/validation"
)

// EncryptRequest contains the parameters for encrypting data.
//
// Nonce is optional: the default path generates a fresh random nonce per
// call. Supplying one is an explicit opt-in for callers that manage nonce
// freshness themselves; reusing a nonce with the same key breaks the
// cipher's guarantees.
type EncryptRequest struct {
	Plaintext string `json:"plaintext"`
	Key       string `json:"key"`             // 64 hex chars
	Nonce     string `json:"nonce,omitempty"` // 24 hex chars, optional
}

// Validate checks if the encrypt request is valid.
func (r *EncryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Plaintext,
			validation.Required,
		),
		validation.Field(&r.Key,
			validation.Required,
			customValidation.NotBlank,
			customValidation.HexOfLength(64),
		),
		validation.Field(&r.Nonce,
			customValidation.HexOfLength(24),
		),
	)
}

// DecryptRequest contains the parameters for decrypting a package.
//
// Hmac is the detached integrity tag returned by encrypt. When omitted,
// the detached layer is recomputed server-side and the AEAD tag alone
// decides authenticity.
type DecryptRequest struct {
	Ciphertext string `json:"ciphertext"`
	Key        string `json:"key"`
	Nonce      string `json:"nonce"`
	Hmac       string `json:"hmac,omitempty"` // 64 hex chars, optional
}

// Validate checks if the decrypt request is valid.
func (r *DecryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Ciphertext,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Hex,
		),
		validation.Field(&r.Key,
			validation.Required,
			customValidation.NotBlank,
			customValidation.HexOfLength(64),
		),
		validation.Field(&r.Nonce,
			validation.Required,
			customValidation.NotBlank,
			customValidation.HexOfLength(24),
		),
		validation.Field(&r.Hmac,
			customValidation.HexOfLength(64),
		),
	)
}

// VerifyRequest contains the parameters for HMAC verification.
type VerifyRequest struct {
	Message string `json:"message"`
	Key     string `json:"key"`
	Hmac    string `json:"hmac"` // 64 hex chars
}

// Validate checks if the verify request is valid.
func (r *VerifyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Message,
			validation.Required,
		),
		validation.Field(&r.Key,
			validation.Required,
			customValidation.NotBlank,
			customValidation.HexOfLength(64),
		),
		validation.Field(&r.Hmac,
			validation.Required,
			customValidation.NotBlank,
			customValidation.HexOfLength(64),
		),
	)
}

// SignRequest contains the parameters for signing an identifier.
type SignRequest struct {
	Identifier string `json:"identifier"`
	Key        string `json:"key"` // 64 hex chars
}

// Validate checks if the sign request is valid.
func (r *SignRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Identifier,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Key,
			validation.Required,
			customValidation.NotBlank,
			customValidation.HexOfLength(64),
		),
	)
}

// VerifySignatureRequest contains the parameters for checking a signature.
type VerifySignatureRequest struct {
	Identifier string `json:"identifier"`
	Signature  string `json:"signature"` // base64
	Key        string `json:"key"`       // 64 hex chars
}

// Validate checks if the verify signature request is valid.
func (r *VerifySignatureRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Identifier,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.Signature,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64,
		),
		validation.Field(&r.Key,
			validation.Required,
			customValidation.NotBlank,
			customValidation.HexOfLength(64),
		),
	)
}
