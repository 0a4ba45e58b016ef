// Package component defines lifecycle-managed parts of a navkit application.
//
// A Component starts, stops and reports its health. The bootstrap package
// registers the deep-link server, the telemetry exporters and the router
// with a Registry, which starts them in order and stops them in reverse.
package component
