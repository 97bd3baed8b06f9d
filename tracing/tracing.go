// Package tracing times a decode step with an OpenTelemetry span, a gocore stat
// and optional prometheus metrics, all finished by a single callback.
package tracing

import (
	"context"
	"time"

	"github.com/bsv-blockchain/blockdecoder/ulogger"
	"github.com/ordishs/gocore"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
)

// Options configures a traced step.
type Options func(s *TraceOptions)

type TraceOptions struct {
	ParentStat *gocore.Stat
	Histogram  prometheus.Histogram
	Counter    prometheus.Counter
	Logger     ulogger.Logger
	LogMessage string
	LogArgs    []interface{}
	Attributes []attribute.KeyValue
}

// WithParentStat hangs the step's stat under stat unless the context already carries one.
func WithParentStat(stat *gocore.Stat) Options {
	return func(s *TraceOptions) { s.ParentStat = stat }
}

// WithHistogram observes the step duration in seconds.
func WithHistogram(histogram prometheus.Histogram) Options {
	return func(s *TraceOptions) { s.Histogram = histogram }
}

func WithCounter(counter prometheus.Counter) Options {
	return func(s *TraceOptions) { s.Counter = counter }
}

func WithTag(key, value string) Options {
	return func(s *TraceOptions) {
		s.Attributes = append(s.Attributes, attribute.String(key, value))
	}
}

// WithLogMessage logs format at DEBUG when the step starts, and again with the
// elapsed time appended when it ends.
func WithLogMessage(logger ulogger.Logger, format string, args ...interface{}) Options {
	return func(s *TraceOptions) {
		s.Logger = logger
		s.LogMessage = format
		s.LogArgs = args
	}
}

type step struct {
	opts  *TraceOptions
	span  Span
	stat  *gocore.Stat
	start time.Time
}

func (s *step) debug(suffix string) {
	if s.opts.Logger == nil || s.opts.LogMessage == "" {
		return
	}

	s.opts.Logger.Debugf(s.opts.LogMessage+suffix, s.opts.LogArgs...)
}

func (s *step) finish(err error) {
	elapsed := time.Since(s.start)

	s.span.RecordError(err)
	s.span.Finish()
	s.stat.AddTime(s.start)

	if s.opts.Histogram != nil {
		s.opts.Histogram.Observe(elapsed.Seconds())
	}

	if s.opts.Counter != nil {
		s.opts.Counter.Inc()
	}

	s.debug(" DONE in " + elapsed.String())
}

// StartTracing opens a step called name. The returned context carries the span
// and stat for nested steps, the returned func ends the step and records err
// when it is not nil.
func StartTracing(ctx context.Context, name string, setOptions ...Options) (context.Context, *gocore.Stat, func(err error)) {
	s := &step{opts: &TraceOptions{}}
	for _, opt := range setOptions {
		opt(s.opts)
	}

	s.span = Start(ctx, name, s.opts.Attributes...)

	parent := s.opts.ParentStat
	if parent == nil {
		parent = defaultStat
	}

	s.start, s.stat, ctx = NewStatFromContext(s.span.Ctx, name, parent)

	s.debug("")

	return ctx, s.stat, s.finish
}
