// Package observability provides Prometheus metrics and the optional
// health/metrics HTTP endpoint for the repost detection service.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ScannerMetrics contains Prometheus metrics for the scanning pipeline.
type ScannerMetrics struct {
	registry *prometheus.Registry

	submissionsProcessed *prometheus.CounterVec
	fingerprintsStored   *prometheus.CounterVec
	matchesFound         *prometheus.CounterVec
	reportsFiled         *prometheus.CounterVec
	mediaFetchSkips      *prometheus.CounterVec
	processDuration      prometheus.Histogram
	trackedCommunities   prometheus.Gauge
}

// NewScannerMetrics creates and registers new scanner metrics.
func NewScannerMetrics(registry *prometheus.Registry) (*ScannerMetrics, error) {
	m := &ScannerMetrics{registry: registry}
	m.initMetrics()

	collectors := []prometheus.Collector{
		m.submissionsProcessed,
		m.fingerprintsStored,
		m.matchesFound,
		m.reportsFiled,
		m.mediaFetchSkips,
		m.processDuration,
		m.trackedCommunities,
	}
	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *ScannerMetrics) initMetrics() {
	m.submissionsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reposterminator_submissions_processed_total",
			Help: "Total number of submissions handled by the processor",
		},
		[]string{"community", "result"},
	)

	m.fingerprintsStored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reposterminator_fingerprints_stored_total",
			Help: "Total number of image fingerprints stored",
		},
		[]string{"community"},
	)

	m.matchesFound = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reposterminator_matches_found_total",
			Help: "Total number of fingerprint matches above threshold",
		},
		[]string{"community"},
	)

	m.reportsFiled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reposterminator_reports_filed_total",
			Help: "Total number of repost reports filed",
		},
		[]string{"community"},
	)

	m.mediaFetchSkips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reposterminator_media_fetch_skips_total",
			Help: "Total number of submissions skipped at the media fetch stage",
		},
		[]string{"community", "reason"},
	)

	m.processDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reposterminator_process_duration_seconds",
			Help:    "Time taken to process one submission",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12), // 10ms to ~40s
		},
	)

	m.trackedCommunities = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reposterminator_tracked_communities",
			Help: "Number of communities currently tracked",
		},
	)
}

// RecordSubmissionProcessed increments the processed-submission counter.
// result is one of "indexed", "skipped" or "failed".
func (m *ScannerMetrics) RecordSubmissionProcessed(community, result string) {
	m.submissionsProcessed.WithLabelValues(community, result).Inc()
}

// RecordFingerprintStored increments the stored-fingerprint counter.
func (m *ScannerMetrics) RecordFingerprintStored(community string) {
	m.fingerprintsStored.WithLabelValues(community).Inc()
}

// RecordMatches adds the number of matches found for one candidate.
func (m *ScannerMetrics) RecordMatches(community string, count int) {
	m.matchesFound.WithLabelValues(community).Add(float64(count))
}

// RecordReportFiled increments the filed-report counter.
func (m *ScannerMetrics) RecordReportFiled(community string) {
	m.reportsFiled.WithLabelValues(community).Inc()
}

// RecordMediaFetchSkip increments the media-skip counter.
func (m *ScannerMetrics) RecordMediaFetchSkip(community, reason string) {
	m.mediaFetchSkips.WithLabelValues(community, reason).Inc()
}

// RecordProcessDuration observes how long one submission took to process.
func (m *ScannerMetrics) RecordProcessDuration(d time.Duration) {
	m.processDuration.Observe(d.Seconds())
}

// SetTrackedCommunities records the current size of the community list.
func (m *ScannerMetrics) SetTrackedCommunities(n int) {
	m.trackedCommunities.Set(float64(n))
}
