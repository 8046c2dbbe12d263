// Package prometheus provides Prometheus collectors for frontdoor metrics.
//
// [NewPrometheusExporter] accepts a [frontdoor.Engine] and exposes an [http.Handler]
// that renders all frontdoor counters and histograms in Prometheus text exposition
// format. Counter names are prefixed frontdoor_*_total; the single histogram is
// frontdoor_pipeline_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
