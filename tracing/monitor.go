package tracing

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// OperationCall is the monitoring operation of spans opened around calls.
const OperationCall = "call"

// startMonitorChild opens the child on a per-call clone of the hub in ctx.
func startMonitorChild(ctx context.Context, name string) (context.Context, *sentry.Span) {
	if sentry.SpanFromContext(ctx) == nil {
		return ctx, nil
	}
	ctx = sentry.SetHubOnContext(ctx, hubFromContext(ctx).Clone())
	span := sentry.StartSpan(ctx, OperationCall, sentry.WithDescription(name))
	return span.Context(), span
}

func startMonitorTransaction(ctx context.Context, name string, sampled bool) (context.Context, *sentry.Span) {
	hub := hubFromContext(ctx)
	if hub.Client() == nil {
		return ctx, nil
	}

	hub = hub.Clone()
	hub.Scope().ClearBreadcrumbs()
	ctx = sentry.SetHubOnContext(detachedContext{ctx}, hub)

	opts := []sentry.SpanOption{sentry.WithOpName(OperationCall)}
	if sampled {
		opts = append(opts, sentry.WithSpanSampled(sentry.SampledTrue))
	}
	tx := sentry.StartTransaction(ctx, name, opts...)
	return tx.Context(), tx
}

func hubFromContext(ctx context.Context) *sentry.Hub {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		return hub
	}
	return sentry.CurrentHub()
}

// detachedContext hides monitoring spans of the parent so a transaction
// started from it becomes a root. Every other value passes through.
type detachedContext struct {
	context.Context
}

func (c detachedContext) Value(key any) any {
	v := c.Context.Value(key)
	if _, ok := v.(*sentry.Span); ok {
		return nil
	}
	return v
}
