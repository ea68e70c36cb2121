package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DispatchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_dispatch_total",
			Help: "Dispatch decisions by channel, category and outcome",
		},
		[]string{"channel", "category", "outcome"}, // outcome: created, suppressed, error
	)

	TransitionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_transition_total",
			Help: "Lifecycle transitions by kind and result",
		},
		[]string{"transition", "result"}, // result: applied, noop, rejected, conflict, error
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notifier_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method", "path", "status"},
	)

	MQConsumeLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notifier_mq_consume_latency_seconds",
			Help:    "Time spent handling one broker delivery",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"queue", "routing_key"},
	)

	SweepBatchSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notifier_sweep_batch_size",
			Help:    "Records picked up per worker sweep",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
		[]string{"worker"},
	)
)

func RecordDispatch(channel, category, outcome string) {
	DispatchTotal.WithLabelValues(channel, category, outcome).Inc()
}

func RecordTransition(transition, result string) {
	TransitionTotal.WithLabelValues(transition, result).Inc()
}

func RecordHTTPRequestDuration(method, path, status string, d time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}

func RecordMQConsumeLatency(queue, routingKey string, d time.Duration) {
	MQConsumeLatency.WithLabelValues(queue, routingKey).Observe(d.Seconds())
}

func RecordSweep(worker string, n int) {
	SweepBatchSize.WithLabelValues(worker).Observe(float64(n))
}
