// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)
)

var (
	ReadinessScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assessment_readiness_score",
			Help:    "Distribution of calculated readiness scores",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		},
	)

	RecommendationsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_recommendations_total",
			Help: "Recommendations issued, by priority",
		},
		[]string{"priority"},
	)

	LeadSaveFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assessment_lead_save_failures_total",
			Help: "Lead saves that failed and were reported to the user",
		},
	)

	ScoreCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_score_cache_total",
			Help: "Score cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_notifications_total",
			Help: "Notifications by channel and status",
		},
		[]string{"channel", "status"},
	)
)
