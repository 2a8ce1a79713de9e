// Package metrics provides render and layout construction metrics.
//
// Components receive a Recorder through dependency injection and default to
// NoopRecorder, so call sites never nil-check:
//
//	factory := layout.NewFactory(registry, layout.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// The Prometheus implementation registers its collectors on the registry it
// is given; HTTPHandler serves that registry.
package metrics
