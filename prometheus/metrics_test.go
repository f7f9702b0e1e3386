package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return New("test", reg, reg)
}

func TestRecordOperation(t *testing.T) {
	m := newTestMetrics()

	m.RecordOperation("venue", "create")
	m.RecordOperation("venue", "create")
	m.RecordError("not_found")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EntityOperations.WithLabelValues("venue", "create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorsTotal.WithLabelValues("not_found")))
}

func TestTrackDBOperation(t *testing.T) {
	m := newTestMetrics()

	m.TrackDBOperation("insert")(time.Now().Add(-time.Millisecond))

	assert.Equal(t, 1, testutil.CollectAndCount(m.DbOperationDuration, "test_db_operation_duration_seconds"))
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := newTestMetrics()

	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/venues/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/missing", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound)
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	for _, path := range []string{"/venues/1", "/venues/2", "/missing"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HttpRequestsTotal.WithLabelValues("GET", "/venues/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HttpRequestsTotal.WithLabelValues("GET", "/missing", "404")))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "test_http_requests_total"))
}
