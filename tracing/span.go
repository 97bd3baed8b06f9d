package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/bsv-blockchain/blockdecoder"

type Span struct {
	Ctx    context.Context
	otSpan trace.Span
}

// Start opens a span on the global tracer provider. Without InitTracer the
// provider is the otel no-op one and the span records nothing.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) Span {
	span := Span{}

	span.Ctx, span.otSpan = otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attrs...))

	return span
}

func (s *Span) SetTag(key, value string) {
	s.otSpan.SetAttributes(attribute.String(key, value))
}

func (s *Span) SetInt(key string, value int) {
	s.otSpan.SetAttributes(attribute.Int(key, value))
}

func (s *Span) RecordError(err error) {
	if err == nil {
		return
	}

	s.otSpan.RecordError(err)
	s.otSpan.SetStatus(codes.Error, err.Error())
}

func (s *Span) Finish() {
	s.otSpan.End()
}
