package dto

import "time"

// EncryptResponse carries a complete encrypted package in wire form.
type EncryptResponse struct {
	Ciphertext string    `json:"ciphertext"`
	Nonce      string    `json:"nonce"`
	Hmac       string    `json:"hmac"`
	CreatedAt  time.Time `json:"created_at"`
}

// DecryptResponse carries the recovered plaintext.
type DecryptResponse struct {
	Plaintext string `json:"plaintext"`
}

// VerifyResponse carries a verification result. Always returned with
// HTTP 200; the boolean is the outcome.
type VerifyResponse struct {
	Valid bool `json:"valid"`
}

// SignResponse carries a base64-encoded signature.
type SignResponse struct {
	Signature string `json:"signature"`
}
