package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for monitoring service health and performance
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	NotificationsReceivedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_notifications_received_total",
			Help: "Total number of payment notifications received",
		},
	)

	NotificationsRejectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_notifications_rejected_total",
			Help: "Total number of notifications rejected for invalid signature",
		},
	)

	PremiumActivationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "premium_activations_total",
			Help: "Total number of premium profile activations",
		},
	)

	TransactionsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_transactions_created_total",
			Help: "Total number of Snap transactions created",
		},
	)
)

// Register registers all Prometheus metrics
func Register() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(NotificationsReceivedTotal)
	prometheus.MustRegister(NotificationsRejectedTotal)
	prometheus.MustRegister(PremiumActivationsTotal)
	prometheus.MustRegister(TransactionsCreatedTotal)
}
