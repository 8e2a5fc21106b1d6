package providers

import (
	"net/http"
	"nodelete/internal/structures"
	"time"
)

const unmatchedRoute = "unmatched"

// MetricsMiddleware counts and times requests per "METHOD path". Paths that
// are not registered routes share one label, so stray URLs cannot grow the
// number of series.
func MetricsMiddleware(metrics MetricsProviderInterface, routes []structures.Route, next http.Handler) http.Handler {
	known := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		known[route.Url] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		began := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		label := endpointLabel(known, r)
		metrics.IncRequestsTotal(label, rec.Status())
		metrics.ObserveRequestDuration(label, time.Since(began))
	})
}

func endpointLabel(known map[string]struct{}, r *http.Request) string {
	path := r.URL.Path
	if _, ok := known[path]; !ok {
		path = unmatchedRoute
	}
	return r.Method + " " + path
}

// statusRecorder keeps the first status sent to the client.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) Status() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}
