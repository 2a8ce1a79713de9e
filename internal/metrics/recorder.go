package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess     ResultLabel = "success"
	ResultPassthrough ResultLabel = "passthrough"
	ResultFailed      ResultLabel = "failed"
)

// Recorder defines observability hooks for layout construction.
type Recorder interface {
	// ObserveRender records one conversion; passthrough means no converter was registered.
	ObserveRender(ext string, d time.Duration, result ResultLabel)
	IncLayoutResult(result ResultLabel)
	ObserveLoadDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRender(string, time.Duration, ResultLabel) {}
func (NoopRecorder) IncLayoutResult(ResultLabel)                      {}
func (NoopRecorder) ObserveLoadDuration(time.Duration)                {}
