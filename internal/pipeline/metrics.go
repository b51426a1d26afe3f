package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the processor's Prometheus collectors.
type Metrics struct {
	EventsTotal     prometheus.Counter
	EventErrors     prometheus.Counter
	TracksTotal     *prometheus.CounterVec
	BestTracksTotal *prometheus.CounterVec
	ClustersTotal   *prometheus.CounterVec
	SectorDuration  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which is what tests want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		EventsTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "dctrack_events_total",
			Help: "Total number of events processed",
		}),
		EventErrors: f.NewCounter(prometheus.CounterOpts{
			Name: "dctrack_event_errors_total",
			Help: "Total number of events that failed processing",
		}),
		TracksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dctrack_tracks_total",
			Help: "Total number of track candidates built",
		}, []string{"sector"}),
		BestTracksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dctrack_best_tracks_total",
			Help: "Total number of sectors with a selected best track",
		}, []string{"sector"}),
		ClustersTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dctrack_clusters_total",
			Help: "Total number of clusters formed",
		}, []string{"sector"}),
		SectorDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "dctrack_sector_duration_seconds",
			Help:    "Time to process one sector of one event",
			Buckets: prometheus.ExponentialBuckets(1e-5, 4, 10),
		}),
	}
}
