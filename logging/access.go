package logging

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// AccessLog returns middleware that writes one INFO line per request through
// the http.access child of logger:
//
//	203.0.113.7 "GET /api/v1/ping HTTP/1.1" 200 2 "-" "kube-probe/1.29"
func AccessLog(logger *zap.Logger) func(http.Handler) http.Handler {
	access := logger.Named(AccessLoggerName)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			access.Info(
				fmt.Sprintf("%s %q %d %d %q %q",
					remoteHost(r.RemoteAddr),
					r.Method+" "+r.URL.RequestURI()+" "+r.Proto,
					rec.status,
					rec.size,
					orDash(r.Referer()),
					orDash(r.UserAgent()),
				),
				zap.Duration("duration", time.Since(start)),
			)
		})
	}
}

func remoteHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// statusRecorder captures the status code and body size written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
