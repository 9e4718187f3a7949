package domain

// KeyContext carries the caller-supplied key material for a single operation.
//
// Keys are owned by the caller for the duration of one call and are never
// cached or persisted by the vault or shield. Callers should Close the
// context when the operation completes to wipe the key from memory.
type KeyContext struct {
	Key []byte
}

// Validate checks that the key is exactly KeySize bytes.
func (k *KeyContext) Validate() error {
	if len(k.Key) != KeySize {
		return ErrInvalidKeyLength
	}
	return nil
}

// Close zeroes the key material.
func (k *KeyContext) Close() {
	Zero(k.Key)
	k.Key = nil
}
