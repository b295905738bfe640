package httpclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
)

// OperationClient is the monitoring operation of outgoing request spans.
const OperationClient = "http.client"

type sentrySpanCtxKey struct{}

// SentryHooks returns hooks that open a monitoring child span for each
// request made under a monitoring span, and inject its trace headers unless
// propagation is disabled for the request.
func SentryHooks() Hooks {
	return Hooks{
		OnRequestStart: func(req *http.Request) *http.Request {
			ctx := req.Context()
			if sentry.SpanFromContext(ctx) == nil {
				return nil
			}
			// One hub per request.
			hub := sentry.GetHubFromContext(ctx)
			if hub == nil {
				hub = sentry.CurrentHub()
			}
			ctx = sentry.SetHubOnContext(ctx, hub.Clone())
			span := sentry.StartSpan(ctx, OperationClient, sentry.WithDescription(spanName(req)))
			span.SetData("http.request.method", req.Method)
			span.SetData("url", req.URL.String())

			if PropagationEnabled(req.Context()) {
				req.Header.Set(sentry.SentryTraceHeader, span.ToSentryTrace())
				if baggage := span.ToBaggage(); baggage != "" && req.Header.Get(sentry.SentryBaggageHeader) == "" {
					req.Header.Set(sentry.SentryBaggageHeader, baggage)
				}
			}
			return req.WithContext(context.WithValue(span.Context(), sentrySpanCtxKey{}, span))
		},
		OnRequestEnd: func(req *http.Request, resp *http.Response) {
			span, ok := req.Context().Value(sentrySpanCtxKey{}).(*sentry.Span)
			if !ok {
				return
			}
			span.SetData("http.response.status_code", resp.StatusCode)
			span.Status = spanStatus(resp.StatusCode)
			span.Finish()
		},
		OnRequestException: func(req *http.Request, err error) {
			span, ok := req.Context().Value(sentrySpanCtxKey{}).(*sentry.Span)
			if !ok {
				return
			}
			span.SetData("error", err.Error())
			span.SetData("error.type", fmt.Sprintf("%T", err))
			span.Status = sentry.SpanStatusInternalError
			span.Finish()
		},
	}
}

func spanStatus(code int) sentry.SpanStatus {
	switch {
	case code < 400:
		return sentry.SpanStatusOK
	case code == http.StatusUnauthorized:
		return sentry.SpanStatusUnauthenticated
	case code == http.StatusForbidden:
		return sentry.SpanStatusPermissionDenied
	case code == http.StatusNotFound:
		return sentry.SpanStatusNotFound
	case code == http.StatusTooManyRequests:
		return sentry.SpanStatusResourceExhausted
	case code < 500:
		return sentry.SpanStatusInvalidArgument
	case code == http.StatusServiceUnavailable:
		return sentry.SpanStatusUnavailable
	case code == http.StatusGatewayTimeout:
		return sentry.SpanStatusDeadlineExceeded
	default:
		return sentry.SpanStatusInternalError
	}
}
