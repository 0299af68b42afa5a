package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	statsRecomputeCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sportplus",
		Subsystem: "stats",
		Name:      "recompute_total",
		Help:      "Number of per-user statistics recomputations, by trigger.",
	}, []string{"trigger"})
	loginFailureCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sportplus",
		Subsystem: "auth",
		Name:      "login_failures_total",
		Help:      "Number of rejected login attempts.",
	})
	gpxExportCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "sportplus",
		Subsystem: "export",
		Name:      "gpx_total",
		Help:      "Number of GPX export requests, by outcome.",
	}, []string{"outcome"})
	lastRecomputeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "sportplus",
		Subsystem: "stats",
		Name:      "last_recompute_timestamp_seconds",
		Help:      "Unix timestamp of the most recent statistics recompute.",
	})
)

func init() {
	prometheus.MustRegister(statsRecomputeCounter, loginFailureCounter, gpxExportCounter, lastRecomputeGauge)
}

// RecordStatsRecompute counts one recompute and moves the watermark.
// trigger is "write", "read", "ranking" or "consumer".
func RecordStatsRecompute(trigger string) {
	statsRecomputeCounter.WithLabelValues(trigger).Inc()
	lastRecomputeGauge.Set(float64(time.Now().Unix()))
}

// RecordLoginFailure counts one rejected login attempt.
func RecordLoginFailure() {
	loginFailureCounter.Inc()
}

// RecordGpxExport counts one export request. outcome is "ok" or the
// failure kind ("no_track", "malformed", "empty").
func RecordGpxExport(outcome string) {
	gpxExportCounter.WithLabelValues(outcome).Inc()
}
