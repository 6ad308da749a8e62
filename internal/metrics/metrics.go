package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Resolve outcomes.
const (
	OutcomeRedirect = "redirect"
	OutcomeExpired  = "expired"
)

// Create rejection reasons.
const (
	ReasonUnauthorized = "unauthorized"
	ReasonInvalidJSON  = "invalid_json"
	ReasonMissingURL   = "missing_url"
)

// Metrics holds the service's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	linksCreated   prometheus.Counter
	resolutions    *prometheus.CounterVec
	rejections     *prometheus.CounterVec
	storeErrors    *prometheus.CounterVec
}

// New registers all collectors under namespace.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests handled.",
		}, []string{"route", "method", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		linksCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "links_created_total",
			Help:      "Number of short links written to the store.",
		}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "link_resolutions_total",
			Help:      "Number of short code lookups by outcome.",
		}, []string{"outcome"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "create_rejections_total",
			Help:      "Number of create requests refused before reaching the store.",
		}, []string{"reason"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Number of failed store operations.",
		}, []string{"op"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestLatency,
		m.linksCreated,
		m.resolutions,
		m.rejections,
		m.storeErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestLatency.WithLabelValues(route).Observe(d.Seconds())
}

func (m *Metrics) LinkCreated() {
	m.linksCreated.Inc()
}

func (m *Metrics) LinkResolved(outcome string) {
	m.resolutions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) CreateRejected(reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) StoreError(op string) {
	m.storeErrors.WithLabelValues(op).Inc()
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
