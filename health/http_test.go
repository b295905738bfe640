package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/getsentry/sentry-go"
)

func serve(h http.Handler) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	return rec
}

func TestHandler_NoChecks(t *testing.T) {
	rec := serve(Handler())

	if rec.Code != http.StatusOK {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "OK" {
		t.Errorf("Body = %v, want 'OK'", rec.Body.String())
	}
	if rec.Header().Get("Content-Type") != "text/plain" {
		t.Errorf("Content-Type = %v, want 'text/plain'", rec.Header().Get("Content-Type"))
	}
}

func TestHandler_Statuses(t *testing.T) {
	healthy := Named("cache", func(context.Context) error { return nil })
	degraded := Named("replica", func(context.Context) error { return fmt.Errorf("%w: lag", ErrDegraded) })
	failing := Named("db", func(context.Context) error { return ErrCheckFailed })

	tests := []struct {
		name     string
		checks   []Checker
		wantCode int
		wantBody string
	}{
		{"healthy", []Checker{healthy}, http.StatusOK, "OK"},
		{"degraded", []Checker{healthy, degraded}, http.StatusOK, "DEGRADED"},
		{"unhealthy", []Checker{degraded, failing}, http.StatusServiceUnavailable, "UNHEALTHY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(Handler(tt.checks...))
			if rec.Code != tt.wantCode {
				t.Errorf("Status = %d, want %d", rec.Code, tt.wantCode)
			}
			if rec.Body.String() != tt.wantBody {
				t.Errorf("Body = %v, want %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRun_Timeout(t *testing.T) {
	slow := Named("slow", func(ctx context.Context) error {
		time.Sleep(time.Second)
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if got := Run(ctx, slow); got != StatusUnhealthy {
		t.Errorf("Run() = %v, want %v", got, StatusUnhealthy)
	}
}

func TestHandler_SuppressesSampling(t *testing.T) {
	client, err := sentry.NewClient(sentry.ClientOptions{EnableTracing: true, TracesSampleRate: 1.0})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	ctx := sentry.SetHubOnContext(context.Background(), sentry.NewHub(client, sentry.NewScope()))
	tx := sentry.StartTransaction(ctx, "GET /api/v1/ping")
	defer tx.Finish()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil).WithContext(tx.Context())
	Handler().ServeHTTP(httptest.NewRecorder(), req)

	if tx.Sampled != sentry.SampledFalse {
		t.Errorf("Sampled = %v, want %v", tx.Sampled, sentry.SampledFalse)
	}
}

func TestRunCheck_WrapsFailures(t *testing.T) {
	cause := errors.New("connection refused")

	err := runCheck(context.Background(), Named("db", func(context.Context) error { return cause }))
	if !errors.Is(err, ErrCheckFailed) {
		t.Errorf("runCheck() = %v, want wrapping %v", err, ErrCheckFailed)
	}
	if !errors.Is(err, cause) {
		t.Errorf("runCheck() = %v, want wrapping %v", err, cause)
	}

	degraded := fmt.Errorf("%w: lag", ErrDegraded)
	if err := runCheck(context.Background(), Named("replica", func(context.Context) error { return degraded })); err != degraded {
		t.Errorf("runCheck() = %v, want %v unchanged", err, degraded)
	}
	if err := runCheck(context.Background(), Named("cache", func(context.Context) error { return nil })); err != nil {
		t.Errorf("runCheck() = %v, want nil", err)
	}
}
