package component

import (
	"context"

	"github.com/kbukum/navkit/observability"
)

// Component represents a lifecycle-managed part of a navkit application:
// the deep-link server, the telemetry exporters, the router itself.
// Every Component is an observability.HealthChecker.
type Component interface {
	// Name returns the unique name of the component for registration.
	Name() string

	// Start initializes and starts the component.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the component and releases resources.
	Stop(ctx context.Context) error

	// CheckHealth returns the current health of the component.
	CheckHealth(ctx context.Context) observability.Health
}

// Description holds summary information for the bootstrap display.
type Description struct {
	// Name is the human-readable display name. If empty, the component's
	// Name() is used.
	Name string
	// Type categorizes the component: "server", "telemetry", "router".
	Type string
	// Details is a one-liner shown in the startup summary.
	Details string
	// Port is the primary port, 0 if not applicable.
	Port int
}

// Describable is optionally implemented by Components to provide
// startup summary information.
type Describable interface {
	Describe() Description
}

// Route holds a single HTTP route for the startup summary.
type Route struct {
	Method  string
	Path    string
	Handler string
}

// RouteProvider is optionally implemented by server components to report
// their HTTP routes for the startup summary.
type RouteProvider interface {
	Routes() []Route
}
