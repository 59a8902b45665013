package hirepay

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess        = "success"
	outcomeTransportError = "transport_error"
)

// Metrics records upstream call counts and latency by operation and outcome.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the upstream metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hirepay_console",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "HirePay API calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hirepay_console",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "HirePay API call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

func (m *Metrics) observe(op, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(op, outcome).Inc()
	m.duration.WithLabelValues(op, outcome).Observe(elapsed.Seconds())
}

// outcomeFor buckets a non-2xx status: 4xx codes are kept, 5xx collapse to one label.
func outcomeFor(status int) string {
	if status >= 500 {
		return "server_error"
	}
	return strconv.Itoa(status)
}
