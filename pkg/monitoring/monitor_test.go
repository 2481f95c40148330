package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsMiddleware_CountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	Init()
	Init() // 重复调用不会 panic

	router := gin.New()
	router.Use(MetricsMiddleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	router.GET("/metrics", PrometheusHandler())

	before := testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/ping", "200"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	after := testutil.ToFloat64(RequestCounter.WithLabelValues("GET", "/ping", "200"))
	assert.Equal(t, before+1, after)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
	assert.Contains(t, w.Body.String(), "interview_submissions_total")
}
