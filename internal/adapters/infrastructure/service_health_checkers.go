package infrastructure

import (
	"context"
	"time"

	"weatherproxy.app/internal/ports"
)

const healthCheckTimeout = 2 * time.Second

// CacheHealthChecker pings the configured cache backend
type CacheHealthChecker struct {
	pinger    ports.Pinger
	cacheType string
}

// NewCacheHealthChecker creates a new cache health checker
func NewCacheHealthChecker(pinger ports.Pinger, cacheType string) *CacheHealthChecker {
	return &CacheHealthChecker{pinger: pinger, cacheType: cacheType}
}

// Check verifies cache connectivity
func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Status:    "healthy",
		Details: map[string]interface{}{
			"type": c.cacheType,
		},
	}

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := c.pinger.Ping(ctx); err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
	}
	return status
}

// CredentialHealthChecker reports whether the upstream credential is present
// without revealing it
type CredentialHealthChecker struct {
	credentials ports.CredentialProvider
}

// NewCredentialHealthChecker creates a new credential health checker
func NewCredentialHealthChecker(credentials ports.CredentialProvider) *CredentialHealthChecker {
	return &CredentialHealthChecker{credentials: credentials}
}

// Check verifies the credential is configured
func (c *CredentialHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "weatherAPI",
		Status:    "healthy",
		Details: map[string]interface{}{
			"credential": c.credentials.GetCredentialName(),
			"configured": true,
		},
	}

	if _, err := c.credentials.GetAPIKey(); err != nil {
		status.Status = "unhealthy"
		status.Error = c.credentials.GetCredentialName() + " not set"
		status.Details["configured"] = false
	}
	return status
}
