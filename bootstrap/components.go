package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/navkit/component"
	"github.com/kbukum/navkit/config"
	"github.com/kbukum/navkit/di"
	"github.com/kbukum/navkit/observability"
	"github.com/kbukum/navkit/router"
)

// telemetry installs the OTLP trace and metric exporters on Start and
// flushes them on Stop.
type telemetry struct {
	cfg     *config.NavConfig
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	started bool
}

var (
	_ component.Component   = (*telemetry)(nil)
	_ component.Describable = (*telemetry)(nil)
)

func newTelemetry(cfg *config.NavConfig) *telemetry {
	return &telemetry{cfg: cfg}
}

func (t *telemetry) Name() string { return "telemetry" }

func (t *telemetry) Start(ctx context.Context) error {
	tc := observability.DefaultTracerConfig(t.cfg.Name)
	tc.ServiceVersion = t.cfg.Version
	tc.Environment = t.cfg.Environment
	tc.Endpoint = t.cfg.Tracing.Endpoint
	tc.Insecure = t.cfg.Tracing.Insecure
	tc.SampleRate = t.cfg.Tracing.SampleRate

	tp, err := observability.InitTracer(ctx, tc)
	if err != nil {
		return fmt.Errorf("tracer: %w", err)
	}

	mc := observability.DefaultMeterConfig(t.cfg.Name)
	mc.ServiceVersion = tc.ServiceVersion
	mc.Environment = tc.Environment
	mc.Endpoint = tc.Endpoint
	mc.Insecure = tc.Insecure

	mp, err := observability.InitMeter(ctx, &mc)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return fmt.Errorf("meter: %w", err)
	}

	t.tracer, t.meter, t.started = tp, mp, true
	return nil
}

func (t *telemetry) Stop(ctx context.Context) error {
	if !t.started {
		return nil
	}
	t.started = false
	return errors.Join(t.tracer.Shutdown(ctx), t.meter.Shutdown(ctx))
}

func (t *telemetry) CheckHealth(ctx context.Context) observability.Health {
	h := observability.Health{Name: t.Name(), Status: observability.HealthStatusUp}
	if !t.started {
		h.Status = observability.HealthStatusDown
		h.Message = "exporters not started"
	}
	return h
}

func (t *telemetry) Describe() component.Description {
	return component.Description{
		Name:    "OpenTelemetry",
		Type:    "telemetry",
		Details: fmt.Sprintf("otlp http %s sample=%.2f", t.cfg.Tracing.Endpoint, t.cfg.Tracing.SampleRate),
	}
}

// navigation reports the router and its store as a component. It owns no
// resources; it exists so the router shows up in health and the summary.
type navigation struct {
	svc   *router.Service
	store *di.Store
}

var (
	_ component.Component   = (*navigation)(nil)
	_ component.Describable = (*navigation)(nil)
)

func (n *navigation) Name() string { return "router" }

func (n *navigation) Start(context.Context) error { return nil }

func (n *navigation) Stop(context.Context) error { return nil }

// CheckHealth is degraded while no route handler is registered: every
// navigation would fail.
func (n *navigation) CheckHealth(ctx context.Context) observability.Health {
	routes := n.svc.Routes()
	h := observability.Health{
		Name:   n.Name(),
		Status: observability.HealthStatusUp,
		Details: map[string]string{
			"routes":        strconv.Itoa(len(routes)),
			"registrations": strconv.Itoa(len(n.store.Registrations())),
		},
	}
	if scopes := n.svc.ActiveScopes(); len(scopes) > 0 {
		h.Details["active_scopes"] = strings.Join(scopes, ",")
	}
	if len(routes) == 0 {
		h.Status = observability.HealthStatusDegraded
		h.Message = "no route handlers registered"
	}
	return h
}

func (n *navigation) Describe() component.Description {
	return component.Description{
		Name:    "Router",
		Type:    "router",
		Details: fmt.Sprintf("%d routes, %d registrations", len(n.svc.Routes()), len(n.store.Registrations())),
	}
}
