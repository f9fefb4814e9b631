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
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// CompletionTotal 完成处理器结果，outcome: first / replay / rejected / precondition
	CompletionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secquest_completions_total",
			Help: "Room and lab completions processed",
		},
		[]string{"kind", "outcome"},
	)

	PointsAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secquest_points_awarded_total",
			Help: "Positive point deltas awarded",
		},
		[]string{"source"},
	)

	VersionConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "secquest_progress_version_conflicts_total",
			Help: "Optimistic concurrency conflicts on progress saves",
		},
	)

	StreakRecalcUsers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "secquest_streak_recalc_users_total",
			Help: "Users visited by the streak recalculation job",
		},
		[]string{"result"},
	)

	StreakRecalcDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "secquest_streak_recalc_duration_seconds",
			Help:    "Duration of full streak recalculation runs",
			Buckets: prometheus.ExponentialBuckets(0.1, 4, 8),
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			CompletionTotal,
			PointsAwarded,
			VersionConflicts,
			StreakRecalcUsers,
			StreakRecalcDuration,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
