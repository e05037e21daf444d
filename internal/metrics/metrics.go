package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// Business metrics
	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status"}, // success, failure
	)

	leadSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_submissions_total",
			Help: "Total number of public lead submissions",
		},
		[]string{"type"}, // message, business_sale, business_buy
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Total number of notification email attempts",
		},
		[]string{"status"}, // sent, failed, disabled
	)

	articleViewsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "article_views_total",
			Help: "Total number of public single-article fetches",
		},
	)
)

// Middleware records Prometheus metrics for every request. The route
// template is used as the endpoint label so /api/articles/:id counts as a
// single endpoint.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		statusCode := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(c.Request.Method, endpoint, statusCode).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, endpoint, statusCode).Observe(time.Since(start).Seconds())
	}
}

// RecordAuthAttempt records an authentication attempt
func RecordAuthAttempt(success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	authAttemptsTotal.WithLabelValues(status).Inc()
}

// RecordLeadSubmission records a new public lead submission
func RecordLeadSubmission(leadType string) {
	leadSubmissionsTotal.WithLabelValues(leadType).Inc()
}

// RecordNotification records a notification email outcome
func RecordNotification(status string) {
	notificationsTotal.WithLabelValues(status).Inc()
}

// RecordArticleView records a public single-article fetch
func RecordArticleView() {
	articleViewsTotal.Inc()
}
