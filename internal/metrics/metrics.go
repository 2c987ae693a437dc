package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	Registry *prometheus.Registry

	CipherOperations *prometheus.CounterVec
	CipherErrors     *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: registry,
		CipherOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sdes_cipher_operations_total",
				Help: "Total number of completed cipher operations",
			},
			[]string{"operation"},
		),
		CipherErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sdes_cipher_errors_total",
				Help: "Total number of rejected cipher inputs",
			},
			[]string{"operation", "kind"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sdes_http_requests_total",
				Help: "Total number of handled HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sdes_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"method", "path"},
		),
	}
	registry.MustRegister(m.CipherOperations, m.CipherErrors, m.HTTPRequests, m.HTTPDuration)
	return m
}
