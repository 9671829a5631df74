// Package metrics exposes Prometheus metrics for the resolver.
//
// Metrics are registered once on the default registry; NewMetrics returns the
// same instance on every call. All recording methods are safe on a nil
// *Metrics so packages can be used without instrumentation (tests, CLI).
package metrics
