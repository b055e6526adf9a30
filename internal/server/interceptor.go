package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/emrgen/doctrack/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-Id"

// unmatchedRoute labels requests that matched no route.
const unmatchedRoute = "unmatched"

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "doctrack_http_requests_total",
		Help: "Number of HTTP requests served.",
	}, []string{"method", "path", "status"})
	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "doctrack_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// statusWriter remembers the status code written by the handler
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// RequestTimeInterceptor tags the request with an id, logs its duration and
// records it in the HTTP metrics.
func RequestTimeInterceptor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			// the route pattern keeps document ids and unknown urls out of the labels
			path := unmatchedRoute
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}

			reqTime := time.Since(start)
			httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(sw.status)).Inc()
			httpRequestDuration.WithLabelValues(r.Method, path).Observe(reqTime.Seconds())
			logrus.WithField("request_id", id).Infof("request time: %s %s: %d %v", r.Method, r.URL.Path, sw.status, reqTime)
		})
	}
}

// RefreshInterceptor starts every interaction cycle with a dirty check, so a
// change made by another writer is seen by this request.
func RefreshInterceptor(repo *repository.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if dirty, err := repo.Refresh(r.Context()); err != nil {
				logrus.Warnf("refresh failed: %v", err)
			} else if dirty {
				logrus.Debugf("document cache dropped")
			}

			next.ServeHTTP(w, r)
		})
	}
}
