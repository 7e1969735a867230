package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder with Prometheus collectors.
type PrometheusRecorder struct {
	renderDuration *prom.HistogramVec
	renderResults  *prom.CounterVec
	buildDuration  prom.Histogram
	buildOutcomes  *prom.CounterVec
}

// NewPrometheusRecorder registers the selleck collectors on reg. A nil reg
// gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "selleck",
			Name:      "render_duration_seconds",
			Help:      "Duration of individual page renders",
			Buckets:   prom.DefBuckets,
		}, []string{"kind"}),
		renderResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "selleck",
			Name:      "renders_total",
			Help:      "Page renders by kind and result",
		}, []string{"kind", "result"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "selleck",
			Name:      "build_duration_seconds",
			Help:      "Total site build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "selleck",
			Name:      "build_outcomes_total",
			Help:      "Site builds by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.renderDuration, pr.renderResults, pr.buildDuration, pr.buildOutcomes)
	return pr
}

func (p *PrometheusRecorder) ObserveRender(kind Kind, d time.Duration) {
	if p == nil {
		return
	}
	p.renderDuration.WithLabelValues(string(kind)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRender(kind Kind, result Result) {
	if p == nil {
		return
	}
	p.renderResults.WithLabelValues(string(kind), string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveBuild(d time.Duration, success bool) {
	if p == nil {
		return
	}
	outcome := "failed"
	if success {
		outcome = "success"
	}
	p.buildDuration.Observe(d.Seconds())
	p.buildOutcomes.WithLabelValues(outcome).Inc()
}

// HTTPHandler serves the metrics in reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
