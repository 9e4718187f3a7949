package domain

import "context"

// KMSKeeper abstracts a KMS-backed envelope encryption primitive.
//
// *secrets.Keeper from gocloud.dev/secrets satisfies this interface; tests
// substitute mocks. The keeper wraps and unwraps the shield signing key so
// the raw key never appears in configuration.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}
