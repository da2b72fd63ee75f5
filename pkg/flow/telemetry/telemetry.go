package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// InstrumentationName is the name used for OTEL instrumentation.
	InstrumentationName = "github.com/ib-77/procflow/pkg/flow"

	SpanExecute = "flow.execute"
	SpanTask    = "flow.task"
)

// Tracer wraps an OpenTelemetry tracer with the spans a Process emits.
// The zero value and nil are valid and use the global tracer provider.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer returns a Tracer from tp, or from the global provider if tp is nil.
func NewTracer(tp trace.TracerProvider) *Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Tracer{tracer: tp.Tracer(InstrumentationName)}
}

func (t *Tracer) get() trace.Tracer {
	if t == nil || t.tracer == nil {
		return otel.GetTracerProvider().Tracer(InstrumentationName)
	}
	return t.tracer
}

// StartRun opens the span covering one Execute call.
func (t *Tracer) StartRun(ctx context.Context, process, strategy, runID string, tasks int) (context.Context, trace.Span) {
	return t.get().Start(ctx, SpanExecute,
		trace.WithAttributes(
			attribute.String("flow.process", process),
			attribute.String("flow.strategy", strategy),
			attribute.String("flow.run_id", runID),
			attribute.Int("flow.tasks", tasks),
		),
	)
}

// StartTask opens a child span for one task.
func (t *Tracer) StartTask(ctx context.Context, name string, index int) (context.Context, trace.Span) {
	return t.get().Start(ctx, SpanTask,
		trace.WithAttributes(
			attribute.String("flow.task.name", name),
			attribute.Int("flow.task.index", index),
		),
	)
}

// End records err on span, if any, and ends it.
func End(span trace.Span, err error, attrs ...attribute.KeyValue) {
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
