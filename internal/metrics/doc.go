// Package metrics provides observability hooks for site build metrics.
//
// The package implements the Null Object pattern: components receive a
// Recorder through dependency injection and default to NoopRecorder, whose
// no-op methods inline to nothing, so metrics collection never requires nil
// checks in the build path.
//
// To enable collection, swap NoopRecorder for an implementation:
//
//	reg := prometheus.NewRegistry()
//	builder.SetRecorder(metrics.NewPrometheusRecorder(reg))
//
// HTTPHandler exposes a registry over HTTP for scraping during long builds.
package metrics
