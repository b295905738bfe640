package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// SamplingDecisionKey is the span attribute carrying an explicit sampling
// decision. NewSampler honors it ahead of the configured rate.
const SamplingDecisionKey = attribute.Key("sampling.decision")

// Explicit sampling decisions.
const (
	DecisionSampled   = "sampled"
	DecisionUnsampled = "unsampled"
)

func withDecision(decision string) trace.SpanStartOption {
	return trace.WithAttributes(SamplingDecisionKey.String(decision))
}

// decisionSampler applies an explicit decision when one is attached at span
// start and defers to base otherwise.
type decisionSampler struct {
	base sdktrace.Sampler
}

// NewSampler returns a parent-based sampler at rate that also honors explicit
// decisions made by StartSampledRoot and ContinueOrStart.
func NewSampler(rate float64) sdktrace.Sampler {
	var root sdktrace.Sampler
	switch {
	case rate >= 1.0:
		root = sdktrace.AlwaysSample()
	case rate <= 0:
		root = sdktrace.NeverSample()
	default:
		root = sdktrace.TraceIDRatioBased(rate)
	}
	return decisionSampler{base: sdktrace.ParentBased(root)}
}

func (s decisionSampler) ShouldSample(p sdktrace.SamplingParameters) sdktrace.SamplingResult {
	state := trace.SpanContextFromContext(p.ParentContext).TraceState()
	for _, attr := range p.Attributes {
		if attr.Key != SamplingDecisionKey {
			continue
		}
		switch attr.Value.AsString() {
		case DecisionSampled:
			return sdktrace.SamplingResult{Decision: sdktrace.RecordAndSample, Tracestate: state}
		case DecisionUnsampled:
			return sdktrace.SamplingResult{Decision: sdktrace.Drop, Tracestate: state}
		}
	}
	return s.base.ShouldSample(p)
}

func (s decisionSampler) Description() string {
	return "DecisionSampler{" + s.base.Description() + "}"
}
