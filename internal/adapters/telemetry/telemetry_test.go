package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/handoff/internal/adapters/telemetry"
	"go.trai.ch/handoff/internal/core/domain"
	"go.trai.ch/handoff/internal/core/ports"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ ports.Tracer = (*telemetry.NoOpTracer)(nil)
	var _ ports.Span = telemetry.NoOpSpan{}
	var _ sdktrace.SpanProcessor = (*telemetry.Collector)(nil)
}

func setupRecorder(t *testing.T, processors ...sdktrace.SpanProcessor) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	opts := []sdktrace.TracerProviderOption{sdktrace.WithSpanProcessor(sr)}
	for _, p := range processors {
		opts = append(opts, sdktrace.WithSpanProcessor(p))
	}
	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr
}

func TestOTelTracer_Start(t *testing.T) {
	sr := setupRecorder(t)
	tracer := telemetry.NewOTelTracer("test")

	_, span := tracer.Start(context.Background(), "phase.analysis", ports.WithKind("phase"))
	span.SetAttribute("stored", 3)
	span.SetAttribute("worker", "w0")
	span.SetAttribute("def_id", domain.DefinitionID(4))
	span.SetAttribute("ok", true)
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "phase.analysis", spans[0].Name())

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "phase", attrs[telemetry.KindKey])
	assert.Equal(t, "3", attrs["stored"])
	assert.Equal(t, "w0", attrs["worker"])
	assert.Equal(t, "DefId(0:4)", attrs["def_id"])
	assert.Equal(t, "true", attrs["ok"])
}

func TestOTelSpan_RecordError(t *testing.T) {
	sr := setupRecorder(t)

	_, span := telemetry.NewOTelTracer("test").Start(context.Background(), "worker")
	span.RecordError(nil)
	span.RecordError(errors.New("boom"))
	span.End()

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
}

func TestCollector(t *testing.T) {
	collector := telemetry.NewCollector()
	setupRecorder(t, collector)
	tracer := telemetry.NewOTelTracer("test")

	ctx, parent := tracer.Start(context.Background(), "pipeline", ports.WithKind("run"))
	_, child := tracer.Start(ctx, "worker w0", ports.WithKind("worker"))
	child.SetAttribute("retrieved", 2)
	child.RecordError(errors.New("aborted"))
	child.End()
	parent.End()

	spans := collector.Spans()
	require.Len(t, spans, 2)

	assert.Equal(t, "pipeline", spans[0].Name)
	assert.Equal(t, "run", spans[0].Kind)
	assert.False(t, spans[0].Failed)

	assert.Equal(t, "worker w0", spans[1].Name)
	assert.Equal(t, "worker", spans[1].Kind)
	assert.Equal(t, "2", spans[1].Attributes["retrieved"])
	assert.NotContains(t, spans[1].Attributes, telemetry.KindKey)
	assert.True(t, spans[1].Failed)
	assert.Equal(t, "aborted", spans[1].Status)
	assert.GreaterOrEqual(t, spans[1].Duration.Nanoseconds(), int64(0))

	collector.Reset()
	assert.Empty(t, collector.Spans())
}

func TestSetup_WithoutEndpoint(t *testing.T) {
	collector := telemetry.NewCollector()
	shutdown, err := telemetry.Setup(context.Background(), collector, "")
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	_, span := telemetry.NewOTelTracer("test").Start(context.Background(), "probe")
	span.End()

	require.Len(t, collector.Spans(), 1)
	assert.Equal(t, "probe", collector.Spans()[0].Name)
}

func TestNoOpTracer(t *testing.T) {
	ctx := context.Background()
	got, span := telemetry.NewNoOpTracer().Start(ctx, "x", ports.WithKind("phase"))
	assert.Equal(t, ctx, got)

	assert.NotPanics(t, func() {
		span.SetAttribute("k", 1)
		span.RecordError(errors.New("ignored"))
		span.End()
	})
}
