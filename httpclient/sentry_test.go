package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentryHooks_InjectsHeader(t *testing.T) {
	srv := newHeaderServer(t, http.StatusOK, "ok")
	tx := newTransaction(t)
	c := NewClient(nil, SentryHooks())

	get(t, c, tx.Context(), srv.URL+"/api/v1/jobs")

	trace := srv.lastHeaders().Get(sentry.SentryTraceHeader)
	require.NotEmpty(t, trace)
	assert.Contains(t, trace, tx.TraceID.String())
	assert.Equal(t, tx, sentry.SpanFromContext(tx.Context()), "active span must be unchanged")
}

func TestSentryHooks_WithoutPropagation(t *testing.T) {
	srv := newHeaderServer(t, http.StatusOK, "ok")
	tx := newTransaction(t)
	c := NewClient(nil, SentryHooks())

	get(t, c, WithoutPropagation(tx.Context()), srv.URL)

	assert.Empty(t, srv.lastHeaders().Get(sentry.SentryTraceHeader))
	assert.Equal(t, tx, sentry.SpanFromContext(tx.Context()))
}

func TestSentryHooks_NoParent(t *testing.T) {
	srv := newHeaderServer(t, http.StatusOK, "ok")
	c := NewClient(nil, SentryHooks())

	get(t, c, context.Background(), srv.URL)

	assert.Empty(t, srv.lastHeaders().Get(sentry.SentryTraceHeader))
}

func TestSentryHooks_SpanLifecycle(t *testing.T) {
	tx := newTransaction(t)
	hooks := SentryHooks()

	req, err := http.NewRequestWithContext(tx.Context(), http.MethodPost, "http://example.test/api/v1/jobs?x=1", nil)
	require.NoError(t, err)
	req = hooks.OnRequestStart(req)
	require.NotNil(t, req)

	span, ok := req.Context().Value(sentrySpanCtxKey{}).(*sentry.Span)
	require.True(t, ok)
	assert.Equal(t, OperationClient, span.Op)
	assert.Equal(t, "POST /api/v1/jobs", span.Description)
	assert.Equal(t, tx.SpanID, span.ParentSpanID)
	assert.NotSame(t, sentry.GetHubFromContext(tx.Context()), sentry.GetHubFromContext(req.Context()),
		"request span must live on its own hub")

	hooks.OnRequestEnd(req, &http.Response{StatusCode: http.StatusNotFound})
	assert.Equal(t, sentry.SpanStatusNotFound, span.Status)
	assert.False(t, span.EndTime.IsZero())
}

func TestSentryHooks_Exception(t *testing.T) {
	tx := newTransaction(t)
	hooks := SentryHooks()

	req, err := http.NewRequestWithContext(tx.Context(), http.MethodGet, "http://example.test/", nil)
	require.NoError(t, err)
	req = hooks.OnRequestStart(req)
	span := req.Context().Value(sentrySpanCtxKey{}).(*sentry.Span)

	hooks.OnRequestException(req, errors.New("dial tcp: refused"))
	assert.Equal(t, sentry.SpanStatusInternalError, span.Status)
	assert.Equal(t, "dial tcp: refused", span.Data["error"])
	assert.Equal(t, "*errors.errorString", span.Data["error.type"])
}

func TestSpanStatus(t *testing.T) {
	tests := map[int]sentry.SpanStatus{
		200: sentry.SpanStatusOK,
		302: sentry.SpanStatusOK,
		400: sentry.SpanStatusInvalidArgument,
		401: sentry.SpanStatusUnauthenticated,
		403: sentry.SpanStatusPermissionDenied,
		404: sentry.SpanStatusNotFound,
		429: sentry.SpanStatusResourceExhausted,
		500: sentry.SpanStatusInternalError,
		503: sentry.SpanStatusUnavailable,
		504: sentry.SpanStatusDeadlineExceeded,
	}
	for code, want := range tests {
		assert.Equal(t, want, spanStatus(code), "status %d", code)
	}
}

func TestSentryHooks_ConcurrentRequestsKeepOwnSpans(t *testing.T) {
	var mu sync.Mutex
	eventSpans := make(map[string]string)
	client, err := sentry.NewClient(sentry.ClientOptions{
		EnableTracing:    true,
		TracesSampleRate: 1.0,
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			mu.Lock()
			defer mu.Unlock()
			if trace, ok := event.Contexts["trace"]; ok {
				eventSpans[event.Message] = fmt.Sprint(trace["span_id"])
			}
			return event
		},
	})
	require.NoError(t, err)
	ctx := sentry.SetHubOnContext(context.Background(), sentry.NewHub(client, sentry.NewScope()))
	tx := sentry.StartTransaction(ctx, "request")
	defer tx.Finish()

	const requests = 4
	var sent sync.WaitGroup
	sent.Add(requests)
	ownSpans := make(map[string]string, requests)
	base := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		name := req.URL.Path
		mu.Lock()
		ownSpans[name] = sentry.SpanFromContext(req.Context()).SpanID.String()
		mu.Unlock()

		sent.Done()
		sent.Wait()

		sentry.GetHubFromContext(req.Context()).CaptureMessage(name)
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: req}, nil
	})
	tr := NewTransport(base, SentryHooks())

	var done sync.WaitGroup
	for i := range requests {
		done.Add(1)
		go func() {
			defer done.Done()
			req, err := http.NewRequestWithContext(tx.Context(), http.MethodGet, fmt.Sprintf("http://example.test/jobs/%d", i), nil)
			if err != nil {
				t.Error(err)
				sent.Done()
				return
			}
			_, _ = tr.RoundTrip(req)
		}()
	}
	done.Wait()

	require.Len(t, ownSpans, requests)
	for name, own := range ownSpans {
		assert.Equal(t, own, eventSpans[name], "event for %s carries a foreign span", name)
	}
	assert.Equal(t, tx, sentry.SpanFromContext(tx.Context()))
}
