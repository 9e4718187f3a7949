package service

import (
	shieldDomain "github.com/vaultshield/vaultshield/internal/shield/domain"
)

// The shipped checks are pass-through extension points: they accept every
// request and exist so deployments can swap in real rules per stage without
// touching the pipeline. Replace them via the shield constructor.

// integrityCheck is the structural verification stage.
type integrityCheck struct{}

// NewIntegrityCheck creates the default integrity check.
func NewIntegrityCheck() shieldDomain.Check {
	return &integrityCheck{}
}

func (c *integrityCheck) Stage() shieldDomain.Stage {
	return shieldDomain.StageIntegrityCheck
}

func (c *integrityCheck) Verify(_ *shieldDomain.Request) bool {
	return true
}

// accessRightsCheck is the caller-context verification stage.
type accessRightsCheck struct{}

// NewAccessRightsCheck creates the default access rights check.
func NewAccessRightsCheck() shieldDomain.Check {
	return &accessRightsCheck{}
}

func (c *accessRightsCheck) Stage() shieldDomain.Stage {
	return shieldDomain.StageAccessRights
}

func (c *accessRightsCheck) Verify(_ *shieldDomain.Request) bool {
	return true
}

// securityPolicyCheck is the business policy verification stage.
type securityPolicyCheck struct{}

// NewSecurityPolicyCheck creates the default security policy check.
func NewSecurityPolicyCheck() shieldDomain.Check {
	return &securityPolicyCheck{}
}

func (c *securityPolicyCheck) Stage() shieldDomain.Stage {
	return shieldDomain.StageSecurityPolicy
}

func (c *securityPolicyCheck) Verify(_ *shieldDomain.Request) bool {
	return true
}
