package app

import (
	"fmt"

	shieldRepository "github.com/vaultshield/vaultshield/internal/shield/repository"
	shieldService "github.com/vaultshield/vaultshield/internal/shield/service"
	shieldUseCase "github.com/vaultshield/vaultshield/internal/shield/usecase"
)

// LogSigner returns the verification log signer.
func (c *Container) LogSigner() shieldService.LogSigner {
	c.logSignerInit.Do(func() {
		c.logSigner = shieldService.NewLogSigner()
	})
	return c.logSigner
}

// VerificationLogRepository returns the verification log repository based on
// the configured backend.
func (c *Container) VerificationLogRepository() (shieldUseCase.VerificationLogRepository, error) {
	var err error
	c.logRepoInit.Do(func() {
		c.logRepo, err = c.initVerificationLogRepository()
		if err != nil {
			c.initErrors["logRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["logRepo"]; exists {
		return nil, storedErr
	}
	return c.logRepo, nil
}

// ShieldUseCase returns the shield use case instance.
func (c *Container) ShieldUseCase() (shieldUseCase.ShieldUseCase, error) {
	var err error
	c.shieldUseCaseInit.Do(func() {
		c.shieldUseCase, err = c.initShieldUseCase()
		if err != nil {
			c.initErrors["shieldUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["shieldUseCase"]; exists {
		return nil, storedErr
	}
	return c.shieldUseCase, nil
}

// initVerificationLogRepository selects the repository for the configured backend.
func (c *Container) initVerificationLogRepository() (shieldUseCase.VerificationLogRepository, error) {
	if c.config.LogBackend == "memory" {
		return shieldRepository.NewMemoryVerificationLogRepository(), nil
	}

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for verification log repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return shieldRepository.NewMySQLVerificationLogRepository(db), nil
	case "postgres":
		return shieldRepository.NewPostgreSQLVerificationLogRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initShieldUseCase creates the shield use case with all its dependencies.
func (c *Container) initShieldUseCase() (shieldUseCase.ShieldUseCase, error) {
	vaultUC, err := c.VaultUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get vault use case for shield use case: %w", err)
	}

	logRepo, err := c.VerificationLogRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get verification log repository for shield use case: %w", err)
	}

	signingKey, err := c.SigningKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get signing key for shield use case: %w", err)
	}

	useCase := shieldUseCase.NewShieldUseCase(vaultUC, logRepo, c.LogSigner(), signingKey, nil)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for shield use case: %w", err)
	}

	return shieldUseCase.NewShieldUseCaseWithMetrics(useCase, businessMetrics), nil
}
