package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics
var (
	httpReqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "settlement_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "settlement_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "endpoint"})
)

// Metrics records a request counter and latency histogram per route pattern.
// Labels use the chi route pattern, not the raw path, to keep cardinality
// bounded.
func Metrics(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		tww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		t_start := time.Now()
		defer func() {
			endpoint := chi.RouteContext(r.Context()).RoutePattern()
			if endpoint == "" {
				endpoint = "unmatched"
			}
			httpReqTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(tww.Status())).Inc()
			httpLatency.WithLabelValues(r.Method, endpoint).Observe(time.Since(t_start).Seconds())
		}()

		next.ServeHTTP(tww, r)
	}
	return http.HandlerFunc(fn)
}
