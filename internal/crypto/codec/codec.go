// Package codec converts cryptographic material between its raw byte form
// and the wire representation: lowercase hexadecimal for keys, nonces,
// ciphertexts and tags, standard base64 for signatures.
//
// Encoding and comparison of binary fields everywhere else in the system
// operate on raw bytes; this package is the only place the presentation
// encoding lives. All functions are pure and stateless.
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"
)

// EncodeHex returns the lowercase hexadecimal representation of b.
func EncodeHex(b []byte) string {
	return hex.EncodeToString(b)
}

// DecodeHex decodes a lowercase hexadecimal string into raw bytes.
//
// Mixed-case input is rejected so every byte sequence has exactly one wire
// representation. All failures surface as ErrDecode with the field name.
func DecodeHex(field, s string) ([]byte, error) {
	for _, r := range s {
		if r >= 'A' && r <= 'F' {
			return nil, fmt.Errorf("%w: %s must be lowercase hex", cryptoDomain.ErrDecode, field)
		}
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not valid hex", cryptoDomain.ErrDecode, field)
	}
	return b, nil
}

// DecodeKey decodes a 64-character hex string into a 32-byte key.
func DecodeKey(s string) ([]byte, error) {
	key, err := DecodeHex("key", s)
	if err != nil {
		return nil, err
	}
	if len(key) != cryptoDomain.KeySize {
		cryptoDomain.Zero(key)
		return nil, cryptoDomain.ErrInvalidKeyLength
	}
	return key, nil
}

// DecodeNonce decodes a 24-character hex string into a 12-byte nonce.
func DecodeNonce(s string) ([]byte, error) {
	nonce, err := DecodeHex("nonce", s)
	if err != nil {
		return nil, err
	}
	if len(nonce) != cryptoDomain.NonceSize {
		return nil, cryptoDomain.ErrInvalidNonceLength
	}
	return nonce, nil
}

// DecodeTag decodes a 64-character hex string into a 32-byte HMAC tag.
func DecodeTag(s string) ([]byte, error) {
	tag, err := DecodeHex("tag", s)
	if err != nil {
		return nil, err
	}
	if len(tag) != cryptoDomain.TagSize {
		return nil, fmt.Errorf("%w: tag must be %d bytes, got %d", cryptoDomain.ErrDecode, cryptoDomain.TagSize, len(tag))
	}
	return tag, nil
}

// EncodeSignature returns the standard base64 transport encoding of a raw
// HMAC signature.
func EncodeSignature(sig []byte) string {
	return base64.StdEncoding.EncodeToString(sig)
}

// DecodeSignature decodes a base64 transport signature into raw bytes.
func DecodeSignature(s string) ([]byte, error) {
	sig, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: signature is not valid base64", cryptoDomain.ErrDecode)
	}
	return sig, nil
}
