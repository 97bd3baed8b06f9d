package ulogger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ordishs/gocore"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var zerologLevels = map[string]zerolog.Level{
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
	"FATAL": zerolog.FatalLevel,
	"PANIC": zerolog.PanicLevel,
}

var gocoreLevels = map[zerolog.Level]int{
	zerolog.DebugLevel: int(gocore.DEBUG),
	zerolog.InfoLevel:  int(gocore.INFO),
	zerolog.WarnLevel:  int(gocore.WARN),
	zerolog.ErrorLevel: int(gocore.ERROR),
	zerolog.FatalLevel: int(gocore.FATAL),
}

// ANSI colours per level, matching the gocore console output
var levelColors = map[string]int{
	"debug": 34,
	"info":  32,
	"warn":  33,
	"error": 31,
	"fatal": 31,
	"panic": 31,
}

type ZLoggerWrapper struct {
	zerolog.Logger
	service string
	opts    Options
}

// NewZeroLogger returns a zerolog backed Logger. PRETTY_LOGS (default true) selects
// the console writer, otherwise one JSON object is written per line.
func NewZeroLogger(service string, options ...Option) *ZLoggerWrapper {
	if service == "" {
		service = "blockdecoder"
	}

	opts := DefaultOptions()
	for _, o := range options {
		o(opts)
	}

	var zctx zerolog.Context

	if gocore.Config().GetBool("PRETTY_LOGS", true) {
		zctx = zerolog.New(consoleWriter(opts.writer, service)).With()
	} else {
		zctx = zerolog.New(opts.writer).With().Str("service", service)
	}

	z := &ZLoggerWrapper{
		Logger:  zctx.Timestamp().CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + 1 + opts.skip).Logger(),
		service: service,
		opts:    *opts,
	}

	z.SetLogLevel(opts.logLevel)

	return z
}

func consoleWriter(w io.Writer, service string) zerolog.ConsoleWriter {
	colored := false
	if f, ok := w.(*os.File); ok && os.Getenv("NO_COLOR") == "" {
		colored = term.IsTerminal(int(f.Fd()))
	}

	paint := func(s string, color int) string {
		if !colored || color == 0 {
			return s
		}

		return fmt.Sprintf("\x1b[%dm%s\x1b[0m", color, s)
	}

	return zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !colored,
		TimeFormat: "15:04:05",
		FormatLevel: func(i interface{}) string {
			level := fmt.Sprint(i)
			return "| " + paint(strings.ToUpper(fmt.Sprintf("%-6s", level)), levelColors[level]) + "|"
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf("| %-6s| %s", service, i)
		},
		FormatCaller: func(i interface{}) string {
			caller, _ := i.(string)
			if caller == "" {
				return ""
			}

			return paint(fmt.Sprintf("%-32s", shortCaller(caller)), 1)
		},
	}
}

// shortCaller keeps as many trailing path elements of file as fit in 32 characters.
func shortCaller(file string) string {
	parts := strings.Split(filepath.ToSlash(file), "/")
	short := parts[len(parts)-1]

	for i := len(parts) - 2; i >= 0 && len(short)+len(parts[i])+1 <= 32; i-- {
		short = parts[i] + "/" + short
	}

	return short
}

// New returns a logger for service that keeps the writer, level and frame skip of z.
func (z *ZLoggerWrapper) New(service string, options ...Option) Logger {
	inherited := []Option{
		WithWriter(z.opts.writer),
		WithLevel(strings.ToUpper(z.GetLevel().String())),
		WithSkipFrame(z.opts.skip),
	}

	return NewZeroLogger(service, append(inherited, options...)...)
}

// Duplicate returns a logger for the same service, with any options applied on top.
func (z *ZLoggerWrapper) Duplicate(options ...Option) Logger {
	return z.New(z.service, options...)
}

// SetLogLevel falls back to INFO for unknown names.
func (z *ZLoggerWrapper) SetLogLevel(logLevel string) {
	level, ok := zerologLevels[strings.ToUpper(logLevel)]
	if !ok {
		level = zerolog.InfoLevel
	}

	z.Logger = z.Logger.Level(level)
}

func (z *ZLoggerWrapper) LogLevel() int {
	if level, ok := gocoreLevels[z.GetLevel()]; ok {
		return level
	}

	return int(gocore.INFO)
}

func (z *ZLoggerWrapper) Debugf(format string, args ...interface{}) {
	z.Logger.Debug().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Infof(format string, args ...interface{}) {
	z.Logger.Info().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Warnf(format string, args ...interface{}) {
	z.Logger.Warn().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Errorf(format string, args ...interface{}) {
	z.Logger.Error().Msgf(format, args...)
}

func (z *ZLoggerWrapper) Fatalf(format string, args ...interface{}) {
	z.Logger.Fatal().Msgf(format, args...)
}
