package ulogger

import "sync/atomic"

type TestingT interface {
	Errorf(format string, args ...interface{})
	FailNow()
}

type tHelper = interface {
	Helper()
}

// ErrorTestLogger drops debug, info and warn output and fails the test on any
// Errorf or Fatalf, so code under test cannot log an error unnoticed.
type ErrorTestLogger struct {
	t        TestingT
	cancelFn func()
	errors   atomic.Int64
}

// NewErrorTestLogger returns a logger bound to t. The optional cancelFn is called
// before a Fatalf stops the test.
func NewErrorTestLogger(t TestingT, cancelFn ...func()) *ErrorTestLogger {
	l := &ErrorTestLogger{t: t}

	if len(cancelFn) > 0 {
		l.cancelFn = cancelFn[0]
	}

	return l
}

// ErrorCount is the number of Errorf and Fatalf calls seen so far.
func (l *ErrorTestLogger) ErrorCount() int64 {
	return l.errors.Load()
}

func (l *ErrorTestLogger) LogLevel() int {
	return 0
}

func (l *ErrorTestLogger) SetLogLevel(string) {}

func (l *ErrorTestLogger) New(string, ...Option) Logger {
	return l
}

func (l *ErrorTestLogger) Duplicate(...Option) Logger {
	return l
}

func (l *ErrorTestLogger) Debugf(string, ...interface{}) {}

func (l *ErrorTestLogger) Infof(string, ...interface{}) {}

func (l *ErrorTestLogger) Warnf(string, ...interface{}) {}

func (l *ErrorTestLogger) Errorf(format string, args ...interface{}) {
	if h, ok := l.t.(tHelper); ok {
		h.Helper()
	}

	l.errors.Add(1)
	l.t.Errorf("unexpected error log: "+format, args...)
}

func (l *ErrorTestLogger) Fatalf(format string, args ...interface{}) {
	if h, ok := l.t.(tHelper); ok {
		h.Helper()
	}

	l.errors.Add(1)
	l.t.Errorf("fatal log: "+format, args...)

	if l.cancelFn != nil {
		l.cancelFn()
	}

	l.t.FailNow()
}
