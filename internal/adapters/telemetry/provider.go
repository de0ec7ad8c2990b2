package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.trai.ch/zerr"
)

// ServiceName is the instrumentation and service name reported in traces.
const ServiceName = "handoff"

// Setup installs a global TracerProvider that feeds collector. When endpoint
// is not empty, spans are also exported over OTLP/HTTP to that URL.
//
// The returned shutdown function flushes pending spans and should be deferred
// by the caller.
func Setup(ctx context.Context, collector *Collector, endpoint string) (func(context.Context) error, error) {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSpanProcessor(collector),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	}

	if endpoint != "" {
		exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(endpoint))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to create trace exporter"), "endpoint", endpoint)
		}

		res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(ServiceName)))
		if err != nil {
			return nil, zerr.Wrap(err, "failed to build trace resource")
		}

		opts = append(opts, sdktrace.WithBatcher(exporter), sdktrace.WithResource(res))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
