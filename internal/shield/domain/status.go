package domain

import "time"

// Shield identity reported by the status endpoint.
const (
	ShieldName    = "vaultshield"
	ShieldVersion = "1.0.0"
)

// ShieldStatus is the read-only introspection view over the shield and its
// verification log. Building it never mutates the log.
type ShieldStatus struct {
	Name               string
	Version            string
	Active             bool
	TotalVerifications int64
	LastVerification   *time.Time
}
