// internal/common/observability/metrics.go
package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

type Options struct {
	ServiceName string
	// Registerer receives the OTel prometheus collector; nil means the default registry.
	Registerer     prometheus.Registerer
	TracingEnabled bool
	JaegerEndpoint string
}

type Observability struct {
	meterProvider   *metric.MeterProvider
	tracerProvider  *sdktrace.TracerProvider
	meter           otelmetric.Meter
	tracer          trace.Tracer
	requestCounter  otelmetric.Int64Counter
	requestDuration otelmetric.Float64Histogram
}

// New wires the OTel meter provider to a prometheus exporter and, when enabled,
// a tracer provider exporting to Jaeger. Failures leave the corresponding
// instruments nil; recording on them is a no-op.
func New(opts Options) (*Observability, error) {
	o := &Observability{tracer: otel.Tracer(opts.ServiceName)}

	var exporterOpts []otelprom.Option
	if opts.Registerer != nil {
		exporterOpts = append(exporterOpts, otelprom.WithRegisterer(opts.Registerer))
	}
	exporter, err := otelprom.New(exporterOpts...)
	if err != nil {
		return o, fmt.Errorf("create prometheus exporter: %w", err)
	}

	o.meterProvider = metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(o.meterProvider)
	o.meter = o.meterProvider.Meter(opts.ServiceName)

	o.requestCounter, _ = o.meter.Int64Counter(
		"canvas.requests",
		otelmetric.WithDescription("Number of canvas API requests processed"),
	)
	o.requestDuration, _ = o.meter.Float64Histogram(
		"canvas.request.duration",
		otelmetric.WithDescription("Canvas API request duration"),
		otelmetric.WithUnit("ms"),
	)

	if opts.TracingEnabled {
		tp, err := newTracerProvider(opts.ServiceName, opts.JaegerEndpoint)
		if err != nil {
			return o, err
		}
		o.tracerProvider = tp
		otel.SetTracerProvider(tp)
		o.tracer = tp.Tracer(opts.ServiceName)
	}

	return o, nil
}

// RecordRequest records one finished request for route with its status code.
func (o *Observability) RecordRequest(ctx context.Context, route string, status int, duration time.Duration) {
	attrs := otelmetric.WithAttributes(
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	if o.requestCounter != nil {
		o.requestCounter.Add(ctx, 1, attrs)
	}
	if o.requestDuration != nil {
		o.requestDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	}
}

// Tracer returns the tracer for service spans.
func (o *Observability) Tracer() trace.Tracer {
	return o.tracer
}

func (o *Observability) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var firstErr error
	if o.tracerProvider != nil {
		if err := o.tracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if o.meterProvider != nil {
		if err := o.meterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
