package app

import (
	"fmt"

	vaultUseCase "github.com/vaultshield/vaultshield/internal/vault/usecase"
)

// VaultUseCase returns the vault use case instance.
func (c *Container) VaultUseCase() (vaultUseCase.VaultUseCase, error) {
	var err error
	c.vaultUseCaseInit.Do(func() {
		c.vaultUseCase, err = c.initVaultUseCase()
		if err != nil {
			c.initErrors["vaultUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultUseCase"]; exists {
		return nil, storedErr
	}
	return c.vaultUseCase, nil
}

// initVaultUseCase creates the vault use case with metrics instrumentation.
func (c *Container) initVaultUseCase() (vaultUseCase.VaultUseCase, error) {
	useCase := vaultUseCase.NewVaultUseCase(c.Engine())

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for vault use case: %w", err)
	}

	return vaultUseCase.NewVaultUseCaseWithMetrics(useCase, businessMetrics), nil
}
