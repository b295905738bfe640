package httpclient

import (
	"bytes"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// LoggingHooks returns hooks that log each request and its outcome through
// logger. Responses with status 400 or above are logged at warn level with
// their body; the body is restored for the caller.
func LoggingHooks(logger *zap.Logger) Hooks {
	if logger == nil {
		logger = zap.L()
	}
	log := logger.Sugar()
	return Hooks{
		OnRequestStart: func(req *http.Request) *http.Request {
			log.Infof("Sending %s %s", req.Method, req.URL)
			return nil
		},
		OnRequestEnd: func(req *http.Request, resp *http.Response) {
			if resp.StatusCode < http.StatusBadRequest {
				log.Infof("Received %s %d %s", req.Method, resp.StatusCode, req.URL)
				return
			}
			log.Warnf("Received %s %d %s: %s", req.Method, resp.StatusCode, req.URL, readBody(resp))
		},
		OnRequestException: func(req *http.Request, err error) {
			log.Warnf("Failed %s %s: %v", req.Method, req.URL, err)
		},
	}
}

// readBody reads the whole response body and replaces it with an in-memory
// copy.
func readBody(resp *http.Response) string {
	if resp.Body == nil || resp.Body == http.NoBody {
		return ""
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return string(body) + " (truncated: " + err.Error() + ")"
	}
	return string(body)
}
