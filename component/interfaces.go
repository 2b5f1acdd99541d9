package component

import "context"

// HealthStatus represents the health state of a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
	StatusDisabled  HealthStatus = "disabled"
)

// Health holds health information for a component.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Ready reports whether the status allows the application to proceed.
// A disabled component is ready: it was switched off by configuration.
func (h Health) Ready() bool {
	return h.Status == StatusHealthy || h.Status == StatusDisabled
}

// Component is a piece of process-wide infrastructure started before the
// samples run and stopped after them, such as the telemetry exporters.
type Component interface {
	// Name returns the unique name of the component for registration.
	Name() string

	// Start initializes and starts the component.
	Start(ctx context.Context) error

	// Stop shuts the component down and releases resources.
	Stop(ctx context.Context) error

	// Health returns the current health status of the component.
	Health(ctx context.Context) Health
}

// Description is the one-line summary a component reports for the startup log.
type Description struct {
	// Name is the display name. If empty, the component's Name() is used.
	Name string
	// Type categorizes the component, e.g. "telemetry".
	Type string
	// Details is a short human-readable line, e.g. "otlp localhost:4318".
	Details string
}

// Describable is optionally implemented by components that report a
// Description at startup.
type Describable interface {
	Describe() Description
}
