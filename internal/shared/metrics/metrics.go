// Package metrics exposes analysis counters and latency in Prometheus format.
package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds only the analyzer's collectors, so /metrics output does not
// depend on what else registered with the global default.
var Registry = prometheus.NewRegistry()

var (
	analysisStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analysis_started_total",
		Help: "Total analyses started",
	})
	analysisCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analysis_completed_total",
		Help: "Total analyses completed",
	})
	analysisFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analysis_failed_total",
		Help: "Total analyses failed",
	})
	analysisRejected = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analysis_rejected_total",
		Help: "Total analyses rejected while another was in flight",
	})
	analysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "analysis_duration_ms",
		Help:    "Analysis duration in milliseconds",
		Buckets: []float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000},
	})
)

func init() {
	Registry.MustRegister(analysisStarted, analysisCompleted, analysisFailed, analysisRejected, analysisDuration)
}

// IncAnalysisStarted increments the started counter.
func IncAnalysisStarted() { analysisStarted.Inc() }

// IncAnalysisCompleted increments the completed counter.
func IncAnalysisCompleted() { analysisCompleted.Inc() }

// IncAnalysisFailed increments the failed counter.
func IncAnalysisFailed() { analysisFailed.Inc() }

// IncAnalysisRejected counts analyses refused because another one was in flight.
func IncAnalysisRejected() { analysisRejected.Inc() }

// ObserveAnalysisDurationMs records an analysis duration in milliseconds.
// Negative values are clamped to zero.
func ObserveAnalysisDurationMs(value float64) {
	analysisDuration.Observe(max(value, 0))
}

// Handler serves Registry in the Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
}

// SinceMillis returns the milliseconds elapsed since start.
func SinceMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
