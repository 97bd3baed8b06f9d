package tracing

import (
	"context"
	"sync"
	"time"

	"github.com/bsv-blockchain/blockdecoder/errors"
	"github.com/bsv-blockchain/blockdecoder/settings"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

var global struct {
	sync.Mutex
	once     sync.Once
	err      error
	provider *sdktrace.TracerProvider
}

func newProvider(cfg settings.TracingSettings) (*sdktrace.TracerProvider, error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, errors.NewProcessingError("[tracing] creating OTLP exporter for %s", cfg.Endpoint, err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceNameKey.String(cfg.ServiceName)))
	if err != nil {
		return nil, errors.NewProcessingError("[tracing] creating resource", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(time.Second)),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRate)),
		sdktrace.WithResource(res),
	), nil
}

// InitTracer installs the global OTLP tracer provider when tracing is enabled.
// Only the first call has any effect.
func InitTracer(tSettings *settings.Settings) error {
	if !tSettings.Tracing.Enabled {
		return nil
	}

	global.once.Do(func() {
		provider, err := newProvider(tSettings.Tracing)
		if err != nil {
			global.err = err
			return
		}

		global.Lock()
		global.provider = provider
		global.Unlock()

		otel.SetTracerProvider(provider)
		otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	})

	return global.err
}

// ShutdownTracer flushes and stops the provider installed by InitTracer, if any.
func ShutdownTracer(ctx context.Context) error {
	global.Lock()
	defer global.Unlock()

	if global.provider == nil {
		return nil
	}

	if err := global.provider.ForceFlush(ctx); err != nil {
		return errors.NewProcessingError("[tracing] flushing spans", err)
	}

	if err := global.provider.Shutdown(ctx); err != nil {
		return errors.NewProcessingError("[tracing] shutting down provider", err)
	}

	global.provider = nil

	return nil
}
