package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors exported by the service.
type Metrics struct {
	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Payment metrics
	PaymentsCreated *prometheus.CounterVec
	GatewayErrors   *prometheus.CounterVec
	GatewayDuration prometheus.Histogram

	// Notification job metrics
	JobsEnqueued       *prometheus.CounterVec
	JobsProcessed      *prometheus.CounterVec
	NotificationsSent  prometheus.Counter
	NotificationErrors prometheus.Counter
}

// NewRegistry returns a registry carrying the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursehub_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coursehub_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		PaymentsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursehub_payments_created_total",
				Help: "Total number of payments created",
			},
			[]string{"target"},
		),
		GatewayErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursehub_gateway_errors_total",
				Help: "Total number of payment gateway failures",
			},
			[]string{"operation"},
		),
		GatewayDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "coursehub_gateway_duration_seconds",
			Help:    "Time spent obtaining a checkout URL",
			Buckets: prometheus.DefBuckets,
		}),
		JobsEnqueued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursehub_notify_jobs_enqueued_total",
				Help: "Total number of notification jobs enqueued",
			},
			[]string{"driver", "result"},
		),
		JobsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursehub_notify_jobs_processed_total",
				Help: "Total number of notification jobs executed",
			},
			[]string{"driver"},
		),
		NotificationsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "coursehub_notifications_sent_total",
			Help: "Total number of subscriber notifications delivered to the mail transport",
		}),
		NotificationErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "coursehub_notification_errors_total",
			Help: "Total number of subscriber notifications that failed to send",
		}),
	}
}

// NewNop builds collectors registered nowhere, for tests and tools.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
