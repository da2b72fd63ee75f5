package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecorder() (*sdktrace.TracerProvider, *tracetest.SpanRecorder) {
	rec := tracetest.NewSpanRecorder()
	return sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)), rec
}

func TestTracer_RunAndTaskSpans(t *testing.T) {
	tp, rec := newRecorder()
	tracer := NewTracer(tp)

	ctx, run := tracer.StartRun(context.Background(), "build", "parallel", "run-1", 2)
	_, ok := tracer.StartTask(ctx, "compile", 0)
	End(ok, nil)
	_, bad := tracer.StartTask(ctx, "link", 1)
	End(bad, errors.New("linker error"))
	End(run, nil, attribute.String("flow.status", "completed"))

	spans := rec.Ended()
	require.Len(t, spans, 3)

	assert.Equal(t, SpanTask, spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	assert.Equal(t, SpanTask, spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "linker error", spans[1].Status().Description)
	assert.Equal(t, spans[2].SpanContext().SpanID(), spans[1].Parent().SpanID())

	assert.Equal(t, SpanExecute, spans[2].Name())
	assert.Contains(t, spans[2].Attributes(), attribute.String("flow.strategy", "parallel"))
	assert.Contains(t, spans[2].Attributes(), attribute.String("flow.status", "completed"))
}

func TestTracer_NilUsesGlobal(t *testing.T) {
	var tracer *Tracer
	_, span := tracer.StartRun(context.Background(), "p", "sequential", "id", 0)
	End(span, nil)

	_, span = NewTracer(nil).StartTask(context.Background(), "t", 0)
	End(span, nil)
}
