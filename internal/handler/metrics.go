package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	notificationsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_service",
			Subsystem: "kafka_consumer",
			Name:      "notifications_sent_total",
			Help:      "Total number of order confirmations delivered to the notifier",
		},
	)

	notificationsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_service",
			Subsystem: "kafka_consumer",
			Name:      "notifications_failed_total",
			Help:      "Total number of failed notification attempts",
		},
	)

	notificationsDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_service",
			Subsystem: "kafka_consumer",
			Name:      "notifications_dlq_total",
			Help:      "Total number of events written to DLQ",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "order_service",
			Subsystem: "kafka_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	notificationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "order_service",
			Subsystem: "kafka_consumer",
			Name:      "notification_duration_seconds",
			Help:      "Histogram of event handling durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

var (
	ordersCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "order_service",
			Subsystem: "http",
			Name:      "orders_created_total",
			Help:      "Total number of placed orders",
		},
		[]string{"payment_method"},
	)

	paymentResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "order_service",
			Subsystem: "http",
			Name:      "payment_results_total",
			Help:      "Outcomes of payment verification and manual confirmation",
		},
		[]string{"path", "result"},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		notificationsSent,
		notificationsFailed,
		notificationsDLQ,
		commitErrors,
		notificationDuration,

		ordersCreated,
		paymentResults,
	)
}
