// Package observability provides OpenTelemetry tracing and metrics for
// navigation and dependency resolution.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("navkit"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanNavigate)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("navkit"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("navkit"))
//	metrics.RecordNavigation(ctx, "profile", "push", observability.StatusOK)
//
// Health:
//
//	health := observability.NewServiceHealth("navkit", "1.0.0")
//	health.AddComponent(observability.Health{Name: "router", Status: observability.HealthStatusUp})
package observability
