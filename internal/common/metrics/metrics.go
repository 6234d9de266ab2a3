// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_requests_total",
			Help: "Total number of chat requests processed",
		},
		[]string{"intent", "status"},
	)

	ChatRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chatbot_request_duration_seconds",
			Help: "Duration of chat request processing in seconds",
		},
		[]string{"intent"},
	)

	CollaboratorFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_collaborator_failures_total",
			Help: "Total number of downstream collaborator failures",
		},
		[]string{"collaborator"},
	)

	SttRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_stt_requests_total",
			Help: "Total number of speech-to-text requests",
		},
		[]string{"status"},
	)
)
