package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RescoreRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_match_rescore_runs_total",
			Help: "Total number of rescore sweeps by outcome",
		},
		[]string{"status"},
	)

	RescoreDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resume_match_rescore_duration_seconds",
			Help:    "Time spent in one rescore sweep",
			Buckets: []float64{1, 5, 15, 30, 60, 300, 900, 3600},
		},
	)

	RescorePairs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_match_rescore_pairs_total",
			Help: "Resume and job pairs scored by the rescore sweep",
		},
		[]string{"result"},
	)

	MatchesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_match_matches_recorded_total",
			Help: "Matches recorded, by trigger",
		},
		[]string{"trigger"},
	)

	NotificationsDelivered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_match_notifications_delivered_total",
			Help: "Notification delivery attempts by channel and outcome",
		},
		[]string{"channel", "status"},
	)

	OutboxBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resume_match_outbox_batch_size",
			Help:    "Notifications claimed per outbox poll",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resume_match_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)
