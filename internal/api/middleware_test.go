package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/gym-management/internal/metrics"
)

type recordedRequest struct {
	method string
	route  string
	status int
}

type fakeRecorder struct {
	metrics.Nop
	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeRecorder) RecordHTTPRequest(method, route string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{method, route, status})
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestMetricsMiddleware(t *testing.T) {
	rec := &fakeRecorder{}
	router := gin.New()
	router.Use(MetricsMiddleware(rec))
	router.GET("/members/:memberId", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(router, http.MethodGet, "/members/MEM-000001")
	serve(router, http.MethodGet, "/members/MEM-000002")
	serve(router, http.MethodGet, "/nowhere")

	assert.Equal(t, []recordedRequest{
		{http.MethodGet, "/members/:memberId", http.StatusOK},
		{http.MethodGet, "/members/:memberId", http.StatusOK},
		{http.MethodGet, "unmatched", http.StatusNotFound},
	}, rec.requests)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	router := gin.New()
	router.Use(MetricsMiddleware(collector))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(metrics.Handler(reg)))

	serve(router, http.MethodGet, "/ping")
	serve(router, http.MethodGet, "/ping")

	w := serve(router, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `gym_http_requests_total{method="GET",route="/ping",status="200"} 2`)

	n, err := testutil.GatherAndCount(reg, "gym_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "one series for /ping and one for the scrape itself")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	serve(router, http.MethodGet, "/ok")
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "route=/ok")
	assert.Contains(t, buf.String(), "status=200")

	buf.Reset()
	serve(router, http.MethodGet, "/boom")
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "status=500")
}
