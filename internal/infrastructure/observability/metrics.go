package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector agrupa las métricas Prometheus de la aplicación sobre un registry propio.
type Collector struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Negocio
	AdminActions *prometheus.CounterVec
	AuditEntries *prometheus.CounterVec
	Uploads      *prometheus.CounterVec
}

// NewCollector crea el collector con el namespace dado. Cada instancia tiene su propio
// registry, así que en tests se pueden crear varios sin colisiones de registro.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		AdminActions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "admin_actions_total",
				Help:      "Mutating admin requests by route and outcome",
			},
			[]string{"route", "outcome"},
		),
		AuditEntries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "audit_entries_total",
				Help:      "Audit log entries by outcome (written, failed, dropped, publish_failed)",
			},
			[]string{"outcome"},
		),
		Uploads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "uploads_total",
				Help:      "Uploaded product images by outcome",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.AdminActions,
		c.AuditEntries,
		c.Uploads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry expone el registry (tests y handlers).
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler handler HTTP estándar para /metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveRequest registra una petición HTTP terminada.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
	if method != http.MethodGet && method != http.MethodHead && method != http.MethodOptions {
		outcome := "ok"
		if status >= 400 {
			outcome = "rejected"
		}
		c.AdminActions.WithLabelValues(route, outcome).Inc()
	}
}

// AuditRecorded implementa audit.Metrics.
func (c *Collector) AuditRecorded(outcome string) {
	c.AuditEntries.WithLabelValues(outcome).Inc()
}

// UploadStored implementa storage.Metrics.
func (c *Collector) UploadStored(outcome string) {
	c.Uploads.WithLabelValues(outcome).Inc()
}
