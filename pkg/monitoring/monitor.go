package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	RegistrationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interview_registrations_total",
			Help: "User registrations by outcome",
		},
		[]string{"outcome"},
	)

	ResumeAnalysisCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "interview_resume_analyses_total",
			Help: "Number of resume analyses served",
		},
	)

	InterviewSubmissionCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "interview_submissions_total",
			Help: "Number of interview response batches submitted",
		},
	)

	InterviewScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "interview_score",
			Help:    "Total score of submitted interviews",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			RegistrationCounter,
			ResumeAnalysisCounter,
			InterviewSubmissionCounter,
			InterviewScoreHistogram,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
