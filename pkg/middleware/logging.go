package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Dias221467/HealthMetrics_Tracker/pkg/metrics"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware logs every request with a generated request ID and
// records Prometheus request counters and latency.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		metrics.ReqCount.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
		metrics.ReqDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration.Seconds())

		logrus.WithFields(logrus.Fields{
			"requestID": requestID,
			"method":    r.Method,
			"path":      r.URL.Path,
			"status":    rec.status,
			"duration":  duration.String(),
		}).Info("Request handled")
	})
}
