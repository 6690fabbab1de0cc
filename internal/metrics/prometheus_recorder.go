package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	stageDuration   *prom.HistogramVec
	buildDuration   prom.Histogram
	stageResults    *prom.CounterVec
	buildOutcome    *prom.CounterVec
	entryRender     *prom.HistogramVec
	filesWritten    prom.Counter
	loadConcurrency prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "site_gen",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "site_gen",
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		})
		pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "site_gen",
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"})
		pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "site_gen",
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"})
		pr.entryRender = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "site_gen",
			Name:      "entry_render_duration_seconds",
			Help:      "Duration of individual entry parse and render operations",
			Buckets:   prom.DefBuckets,
		}, []string{"result"})
		pr.filesWritten = prom.NewCounter(prom.CounterOpts{
			Namespace: "site_gen",
			Name:      "files_written_total",
			Help:      "Output files written across builds",
		})
		pr.loadConcurrency = prom.NewGauge(prom.GaugeOpts{
			Namespace: "site_gen",
			Name:      "load_concurrency",
			Help:      "Observed loader concurrency for the last build",
		})
		reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome, pr.entryRender, pr.filesWritten, pr.loadConcurrency)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}
func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}
func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil || p.stageResults == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}
func (p *PrometheusRecorder) IncBuildOutcome(outcome string) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) ObserveEntryRender(d time.Duration, success bool) {
	if p == nil || p.entryRender == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.entryRender.WithLabelValues(res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddFilesWritten(n int) {
	if p == nil || p.filesWritten == nil {
		return
	}
	p.filesWritten.Add(float64(n))
}

func (p *PrometheusRecorder) SetLoadConcurrency(n int) {
	if p == nil || p.loadConcurrency == nil {
		return
	}
	p.loadConcurrency.Set(float64(n))
}
