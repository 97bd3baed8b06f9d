package ulogger

import (
	"github.com/ordishs/gocore"
)

// GoCoreLogger writes through a gocore logger. gocore keeps one logger per
// service, with the level it was first created with.
type GoCoreLogger struct {
	*gocore.Logger
	service string
	level   string
}

func NewGoCoreLogger(service string, options ...Option) *GoCoreLogger {
	if service == "" {
		service = "blockdecoder"
	}

	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	return &GoCoreLogger{
		Logger:  gocore.Log(service, gocore.NewLogLevelFromString(opts.logLevel)),
		service: service,
		level:   opts.logLevel,
	}
}

func (g *GoCoreLogger) New(service string, options ...Option) Logger {
	return NewGoCoreLogger(service, append([]Option{WithLevel(g.level)}, options...)...)
}

// Duplicate shares the underlying logger, its level cannot change.
func (g *GoCoreLogger) Duplicate(...Option) Logger {
	dup := *g
	return &dup
}

// SetLogLevel is a no-op.
func (g *GoCoreLogger) SetLogLevel(string) {}
