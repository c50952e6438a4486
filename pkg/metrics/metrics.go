package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records authentication attempts by flow (signup|login|verify_otp) and result.
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scribe_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"flow", "result"},
	)

	// OTPIssued counts one-time codes issued by trigger (signup|resend).
	OTPIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scribe_otp_issued_total",
			Help: "Total number of one-time codes issued",
		},
		[]string{"trigger"},
	)

	// NoteOperations counts note CRUD operations and their outcome.
	NoteOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scribe_note_operations_total",
			Help: "Total number of note operations",
		},
		[]string{"operation", "result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scribe_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
