package service

import (
	"context"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// kmsService implements KMSService using gocloud.dev/secrets.
type kmsService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens a secrets.Keeper for the configured KMS provider using the keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
// Returns a KMSKeeper which *secrets.Keeper implements.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// UnwrapSigningKey decrypts the KMS-wrapped shield signing key.
//
// The wrapped ciphertext comes from SHIELD_SIGNING_KEY when a KMS URI is
// configured. The unwrapped key must be exactly 32 bytes.
func UnwrapSigningKey(ctx context.Context, keeper cryptoDomain.KMSKeeper, wrapped []byte) (*cryptoDomain.SigningKey, error) {
	key, err := keeper.Decrypt(ctx, wrapped)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap signing key: %w", err)
	}
	if len(key) != cryptoDomain.KeySize {
		cryptoDomain.Zero(key)
		return nil, fmt.Errorf("%w: unwrapped signing key must be %d bytes, got %d",
			cryptoDomain.ErrInvalidKeyLength, cryptoDomain.KeySize, len(key))
	}
	return &cryptoDomain.SigningKey{Key: key}, nil
}
