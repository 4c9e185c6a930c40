package metrics

import "context"

// HealthChecker is the interface to check if a component of the run is able to make progress
type HealthChecker interface {
	// IsHealthy returns an error once the component stopped making progress
	IsHealthy(ctx context.Context) error
}
