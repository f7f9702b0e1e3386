package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every collector the service exports
type Metrics struct {
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec
	DbOperationDuration *prometheus.HistogramVec
	EntityOperations    *prometheus.CounterVec
	ErrorsTotal         *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// InitMetrics registers the service metrics on the default registry
func InitMetrics(prefix string) *Metrics {
	return New(prefix, prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// New builds the metrics against the given registry
func New(prefix string, reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HttpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HttpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		DbOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_db_operation_duration_seconds",
				Help:    "Duration of database operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation_type"},
		),
		EntityOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_entity_operations_total",
				Help: "Total number of venue, artist and show operations",
			},
			[]string{"entity", "operation"},
		),
		ErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of failed operations by error kind",
			},
			[]string{"kind"},
		),
		gatherer: gatherer,
	}
}

// TrackDBOperation returns a function that records the duration of a database operation
func (m *Metrics) TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		m.DbOperationDuration.WithLabelValues(operationType).Observe(time.Since(startTime).Seconds())
	}
}

// RecordOperation increments the counter for entity operations
func (m *Metrics) RecordOperation(entity, operation string) {
	m.EntityOperations.WithLabelValues(entity, operation).Inc()
}

// RecordError increments the error counter for the given kind
func (m *Metrics) RecordError(kind string) {
	m.ErrorsTotal.WithLabelValues(kind).Inc()
}

// Middleware records request count and duration for every route
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				// the error handler has not written the response yet
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			method := c.Request().Method
			path := c.Path()
			statusStr := strconv.Itoa(status)

			m.HttpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
			m.HttpRequestDuration.WithLabelValues(method, path, statusStr).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// Handler exposes the gathered metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
