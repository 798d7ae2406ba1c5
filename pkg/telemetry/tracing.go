// Package telemetry sets up OpenTelemetry tracing for the process.
package telemetry

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type Options struct {
	Enabled     bool
	ServiceName string
	Env         string
	// Endpoint is the OTLP/HTTP collector address (host:port). Empty falls
	// back to the stdout exporter.
	Endpoint    string
	Insecure    bool
	SampleRatio float64
	// Stdout receives spans when no endpoint is set. Defaults to io.Discard
	// outside of dev.
	Stdout io.Writer
}

// Init installs the global tracer provider and propagator. The returned
// function flushes and stops the exporter. When tracing is disabled the
// global no-op provider stays in place and the shutdown function does nothing.
func Init(ctx context.Context, log *slog.Logger, opts Options) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !opts.Enabled {
		return noop, nil
	}

	name := strings.TrimSpace(opts.ServiceName)
	if name == "" {
		name = "storefront"
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", name),
		attribute.String("deployment.environment", opts.Env),
	))
	if err != nil {
		log.Warn("otel resource init failed (continuing)", slog.Any("err", err))
	}

	exporter, err := newExporter(ctx, opts)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(clampRatio(opts.SampleRatio)))),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info("otel tracing initialized", slog.String("service", name), slog.String("endpoint", opts.Endpoint))
	return tp.Shutdown, nil
}

func newExporter(ctx context.Context, opts Options) (sdktrace.SpanExporter, error) {
	if ep := strings.TrimSpace(opts.Endpoint); ep != "" {
		o := []otlptracehttp.Option{otlptracehttp.WithEndpoint(ep)}
		if opts.Insecure {
			o = append(o, otlptracehttp.WithInsecure())
		}
		return otlptracehttp.New(ctx, o...)
	}
	w := opts.Stdout
	if w == nil {
		w = io.Discard
	}
	return stdouttrace.New(stdouttrace.WithWriter(w))
}

func clampRatio(r float64) float64 {
	switch {
	case r <= 0:
		return 0
	case r > 1:
		return 1
	default:
		return r
	}
}
