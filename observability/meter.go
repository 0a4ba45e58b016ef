package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/navkit/logger"
)

// Outcome labels shared by every instrument.
const (
	StatusOK       = "ok"
	StatusMiss     = "miss"
	StatusRejected = "rejected"
	StatusError    = "error"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The provider should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.WithComponent("observability").Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the navkit metric instruments. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	navigationTotal metric.Int64Counter
	resolutionTotal metric.Int64Counter
	deepLinkTotal   metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	navigationTotal, err := meter.Int64Counter("navigation.total",
		metric.WithDescription("Navigation requests by route, style and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating navigation.total counter: %w", err)
	}

	resolutionTotal, err := meter.Int64Counter("resolution.total",
		metric.WithDescription("Registry lookups by type and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resolution.total counter: %w", err)
	}

	deepLinkTotal, err := meter.Int64Counter("deeplink.total",
		metric.WithDescription("Deep-link requests by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating deeplink.total counter: %w", err)
	}

	return &Metrics{
		navigationTotal: navigationTotal,
		resolutionTotal: resolutionTotal,
		deepLinkTotal:   deepLinkTotal,
	}, nil
}

// RecordNavigation counts one navigation request.
func (m *Metrics) RecordNavigation(ctx context.Context, route, style, status string) {
	if m == nil {
		return
	}
	m.navigationTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("route", route),
		attribute.String("style", style),
		attribute.String(AttrStatus, status),
	))
}

// RecordResolution counts one registry lookup.
func (m *Metrics) RecordResolution(ctx context.Context, typeName, status string) {
	if m == nil {
		return
	}
	m.resolutionTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", typeName),
		attribute.String(AttrStatus, status),
	))
}

// RecordDeepLink counts one deep-link request.
func (m *Metrics) RecordDeepLink(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.deepLinkTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrStatus, status)))
}
