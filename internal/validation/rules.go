// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/hex"
	"fmt"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/vaultshield/vaultshield/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// Hex validates that a string is valid lowercase hexadecimal data.
var Hex = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_hex_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if s != strings.ToLower(s) {
		return validation.NewError("validation_hex_case", "must be lowercase hexadecimal")
	}
	if _, err := hex.DecodeString(s); err != nil {
		return validation.NewError("validation_hex", "must be valid hex-encoded data")
	}
	return nil
})

// HexOfLength validates that a string is valid lowercase hex of exactly n characters.
// Used for fixed-width wire fields: keys are 64 hex chars, nonces 24, tags 64.
func HexOfLength(n int) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return validation.NewError("validation_hex_type", "must be a string")
		}
		if s == "" {
			return nil // Let Required handle empty strings
		}
		if len(s) != n {
			return validation.NewError("validation_hex_length", fmt.Sprintf("must be exactly %d hex characters", n))
		}
		if s != strings.ToLower(s) {
			return validation.NewError("validation_hex_case", "must be lowercase hexadecimal")
		}
		if _, err := hex.DecodeString(s); err != nil {
			return validation.NewError("validation_hex", "must be valid hex-encoded data")
		}
		return nil
	})
}
