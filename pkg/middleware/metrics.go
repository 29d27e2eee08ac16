package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/indubai/portal-api/internal/metrics"
)

// Metrics records request count and latency under the route pattern, not the raw path, so
// ids in the URL do not blow up label cardinality.
func Metrics(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := newLoggingResponseWriter(w)

			next.ServeHTTP(lrw, r)

			metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(lrw.statusCode)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
