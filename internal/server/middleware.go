package server

import (
	"net/http"
	"strconv"
	"time"
)

// statusWriter captures the final HTTP status code and number of bytes
// written. This helps distinguish "handler returned 200" from "client
// received a response".
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without calling WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// observe logs end-to-end request duration and counts requests per route
// pattern and status.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: writer}
		next.ServeHTTP(sw, req)

		if sw.status == 0 {
			sw.status = http.StatusOK
		}

		route := req.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()

		s.log.DebugContext(req.Context(), "Request served",
			"method", req.Method,
			"path", req.URL.RequestURI(),
			"status", sw.status,
			"bytes", sw.bytes,
			"duration", time.Since(start))
	})
}
