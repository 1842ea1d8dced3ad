package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// TipSearchCounter counts tip search/list requests
	TipSearchCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tips_search_total",
			Help: "Total number of tip search requests",
		},
	)

	// TipOperationCounter counts tip mutations by operation
	TipOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tips_operations_total",
			Help: "Total number of tip operations",
		},
		[]string{"operation"}, // "create", "delete"
	)

	// FavoriteToggleCounter counts favorite toggles by outcome
	FavoriteToggleCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tips_favorite_toggles_total",
			Help: "Total number of favorite toggles by resulting state",
		},
		[]string{"favorited"}, // "true" or "false"
	)

	// OTPCounter counts one-time-code operations by phase and outcome
	OTPCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tips_otp_total",
			Help: "Total number of one-time-code operations",
		},
		[]string{"phase", "outcome"}, // phase: "send"/"verify", outcome: "ok"/"invalid"/"expired"/"error"
	)

	// AdminOperationCounter counts admin dashboard operations
	AdminOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tips_admin_operations_total",
			Help: "Total number of admin operations",
		},
		[]string{"operation"}, // "stats", "list_users", "toggle_role", "delete_user"
	)

	// APIErrorCounter counts request failures by type
	APIErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tips_errors_total",
			Help: "Total number of API errors",
		},
		[]string{"type"}, // "unauthorized", "forbidden", "not_found", "validation", "internal"
	)

	// HTTPRequestCounter counts HTTP requests by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tips_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Histogram metrics
var (
	// RequestDuration records request duration in seconds
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tips_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// DBOperationDuration records database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tips_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // "query", "insert", "update", "delete"
	)
)

func init() {
	prometheus.MustRegister(TipSearchCounter)
	prometheus.MustRegister(TipOperationCounter)
	prometheus.MustRegister(FavoriteToggleCounter)
	prometheus.MustRegister(OTPCounter)
	prometheus.MustRegister(AdminOperationCounter)
	prometheus.MustRegister(APIErrorCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DBOperationDuration)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// RecordAPIError records a request failure by type
func RecordAPIError(errorType string) {
	APIErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordTipOperation records a tip mutation
func RecordTipOperation(operation string) {
	TipOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// RecordFavoriteToggle records a favorite toggle by resulting state
func RecordFavoriteToggle(favorited bool) {
	FavoriteToggleCounter.With(prometheus.Labels{"favorited": strconv.FormatBool(favorited)}).Inc()
}

// RecordOTP records a one-time-code operation
func RecordOTP(phase, outcome string) {
	OTPCounter.With(prometheus.Labels{"phase": phase, "outcome": outcome}).Inc()
}

// RecordAdminOperation records an admin dashboard operation
func RecordAdminOperation(operation string) {
	AdminOperationCounter.With(prometheus.Labels{"operation": operation}).Inc()
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}
