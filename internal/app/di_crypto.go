package app

import (
	"context"
	"fmt"

	cryptoDomain "github.com/vaultshield/vaultshield/internal/crypto/domain"
	cryptoService "github.com/vaultshield/vaultshield/internal/crypto/service"
)

// Engine returns the cryptographic engine service.
func (c *Container) Engine() cryptoService.Engine {
	c.engineInit.Do(func() {
		c.engine = cryptoService.NewEngine()
	})
	return c.engine
}

// KMSService returns the KMS service.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// SigningKey returns the verification log signing key loaded from environment
// variables, unwrapping it through the configured KMS provider when one is set.
func (c *Container) SigningKey() (*cryptoDomain.SigningKey, error) {
	var err error
	c.signingKeyInit.Do(func() {
		c.signingKey, err = c.initSigningKey()
		if err != nil {
			c.initErrors["signingKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signingKey"]; exists {
		return nil, storedErr
	}
	return c.signingKey, nil
}

// initSigningKey loads the signing key with fail-fast validation.
func (c *Container) initSigningKey() (*cryptoDomain.SigningKey, error) {
	if c.config.SigningKeyKMSURI == "" {
		signingKey, err := cryptoDomain.LoadSigningKeyFromEnv()
		if err != nil {
			return nil, fmt.Errorf("failed to load signing key: %w", err)
		}
		return signingKey, nil
	}

	wrapped, err := cryptoDomain.LoadWrappedSigningKeyFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load wrapped signing key: %w", err)
	}

	ctx := context.Background()
	keeper, err := c.KMSService().OpenKeeper(ctx, c.config.SigningKeyKMSURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() { _ = keeper.Close() }()

	signingKey, err := cryptoService.UnwrapSigningKey(ctx, keeper, wrapped)
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap signing key: %w", err)
	}

	return signingKey, nil
}
