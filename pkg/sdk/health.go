package pixgallery

import (
	"context"

	healthuc "github.com/kailas-cloud/pixgallery/internal/usecase/health"
)

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded"
	Checks map[string]string // component → "ok"/"error"
}

// Health checks the page cache connection. Without a cache it always reports "ok".
func (c *Client) Health(ctx context.Context) HealthStatus {
	if c.healthSvc == nil {
		return HealthStatus{Status: string(healthuc.Healthy), Checks: map[string]string{}}
	}
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
