package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "pane-pilot"

// Metrics holds all OTEL metric instruments for pane-pilot.
// All counters are cumulative (monotonic) and safe for concurrent use.
type Metrics struct {
	// Engine counters
	Actions    metric.Int64Counter
	SinkCalls  metric.Int64Counter
	SinkErrors metric.Int64Counter

	// LLM token counters for the scripter (partitioned by provider + model)
	InputTokens  metric.Int64Counter
	OutputTokens metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Actions, err = meter.Int64Counter("actions.total",
		metric.WithDescription("Actions dispatched, partitioned by action kind"))
	if err != nil {
		return nil, err
	}

	m.SinkCalls, err = meter.Int64Counter("sink.calls",
		metric.WithDescription("Sink invocations, partitioned by channel (text, hex)"))
	if err != nil {
		return nil, err
	}

	m.SinkErrors, err = meter.Int64Counter("sink.errors",
		metric.WithDescription("Failed deliveries surfaced by the sinks"))
	if err != nil {
		return nil, err
	}

	m.InputTokens, err = meter.Int64Counter("llm.tokens.input",
		metric.WithDescription("Total LLM input tokens consumed"),
		metric.WithUnit("{token}"))
	if err != nil {
		return nil, err
	}

	m.OutputTokens, err = meter.Int64Counter("llm.tokens.output",
		metric.WithDescription("Total LLM output tokens consumed"),
		metric.WithUnit("{token}"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordAction counts one dispatched action of the given kind.
func (m *Metrics) RecordAction(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.Actions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action.kind", kind),
	))
}

// RecordSinkCall counts one sink invocation on the given channel.
func (m *Metrics) RecordSinkCall(ctx context.Context, channel string) {
	if m == nil {
		return
	}
	m.SinkCalls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("sink.channel", channel),
	))
}

// RecordSinkError counts one delivery failure on the given channel.
func (m *Metrics) RecordSinkError(ctx context.Context, channel string) {
	if m == nil {
		return
	}
	m.SinkErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("sink.channel", channel),
	))
}

// RecordTokens records LLM token usage on the metric counters.
func (m *Metrics) RecordTokens(ctx context.Context, provider, model string, input, output int64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("llm.provider", provider),
		attribute.String("llm.model", model),
	)
	m.InputTokens.Add(ctx, input, attrs)
	m.OutputTokens.Add(ctx, output, attrs)
}
