package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	renderDuration *prom.HistogramVec
	layouts        *prom.CounterVec
	loadDuration   prom.Histogram
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
// A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "layoutrender",
			Name:      "render_duration_seconds",
			Help:      "Duration of layout content conversions by source extension",
			Buckets:   prom.DefBuckets,
		}, []string{"extension", "result"}),
		layouts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "layoutrender",
			Name:      "layouts_total",
			Help:      "Layout construction outcomes",
		}, []string{"result"}),
		loadDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "layoutrender",
			Name:      "load_duration_seconds",
			Help:      "Duration of a full layouts directory load",
			Buckets:   prom.DefBuckets,
		}),
	}
	reg.MustRegister(pr.renderDuration, pr.layouts, pr.loadDuration)
	return pr
}

func (p *PrometheusRecorder) ObserveRender(ext string, d time.Duration, result ResultLabel) {
	if p == nil {
		return
	}
	p.renderDuration.WithLabelValues(ext, string(result)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncLayoutResult(result ResultLabel) {
	if p == nil {
		return
	}
	p.layouts.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveLoadDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.loadDuration.Observe(d.Seconds())
}

// HTTPHandler returns an http.Handler that serves Prometheus metrics for the provided registry.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
