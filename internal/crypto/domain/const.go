package domain

// Sizes for all cryptographic material handled by the engine.
//
// ChaCha20-Poly1305 fixes the key at 256 bits and the nonce at 96 bits.
// The detached integrity tag is a full HMAC-SHA256 digest, independent of
// the 16-byte Poly1305 tag the cipher embeds in its ciphertext.
const (
	// KeySize is the required length in bytes for all symmetric keys:
	// AEAD keys, HMAC keys, and derived keys.
	KeySize = 32

	// NonceSize is the required nonce length in bytes for ChaCha20-Poly1305.
	NonceSize = 12

	// TagSize is the length in bytes of a detached HMAC-SHA256 integrity tag.
	TagSize = 32
)

// MinKDFIterations is the lowest permitted PBKDF2 iteration count.
//
// Key derivation requests below this floor are rejected rather than
// silently raised, so callers notice a misconfigured client instead of
// getting a different key than they asked for.
const MinKDFIterations = 100_000
