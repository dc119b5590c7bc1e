package logger

import (
	"context"
	"fmt"
	multi "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"
)

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, err error, args ...any)

	// Named returns a logger tagging every record with component=name.
	Named(component string) Logger
}

// SlogLogger writes text records to stdout and JSON records to a rotated file.
// Loggers derived with Named share the level of their root.
type SlogLogger struct {
	log   *slog.Logger
	level *slog.LevelVar
}

type options struct {
	stdout  io.Writer
	logFile string
}

type Option func(*options)

// WithFile sets the rotated JSON log file. An empty path disables it.
func WithFile(path string) Option {
	return func(o *options) {
		o.logFile = path
	}
}

func WithStdout(w io.Writer) Option {
	return func(o *options) {
		o.stdout = w
	}
}

func New(opts ...Option) *SlogLogger {
	o := options{stdout: os.Stdout, logFile: "logs/main.log"}
	for _, opt := range opts {
		opt(&o)
	}

	level := &slog.LevelVar{}
	handlerOpts := &slog.HandlerOptions{AddSource: true, Level: level}

	handlers := []slog.Handler{slog.NewTextHandler(o.stdout, handlerOpts)}
	if o.logFile != "" {
		handlers = append(handlers, slog.NewJSONHandler(&lumberjack.Logger{
			Filename:   o.logFile,
			MaxSize:    64,
			MaxBackups: 8,
			MaxAge:     14,
			Compress:   true,
		}, handlerOpts))
	}

	return &SlogLogger{
		log:   slog.New(multi.Fanout(handlers...)),
		level: level,
	}
}

// NewNop returns a logger that writes nowhere.
func NewNop() *SlogLogger {
	return New(WithStdout(io.Discard), WithFile(""))
}

// SetLogLevel accepts debug, info, warn or error.
func (l *SlogLogger) SetLogLevel(name string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return fmt.Errorf("log level %q: %w", name, err)
	}
	l.level.Set(lvl)
	return nil
}

func (l *SlogLogger) Named(component string) Logger {
	return &SlogLogger{
		log:   l.log.With(slog.String("component", component)),
		level: l.level,
	}
}

func (l *SlogLogger) Debug(msg string, args ...any) {
	l.write(slog.LevelDebug, msg, args)
}

func (l *SlogLogger) Info(msg string, args ...any) {
	l.write(slog.LevelInfo, msg, args)
}

func (l *SlogLogger) Warn(msg string, args ...any) {
	l.write(slog.LevelWarn, msg, args)
}

func (l *SlogLogger) Error(msg string, err error, args ...any) {
	if err != nil {
		args = append([]any{slog.String("error", err.Error())}, args...)
	}
	l.write(slog.LevelError, msg, args)
}

// write records the caller of the exported method as the source.
func (l *SlogLogger) write(level slog.Level, msg string, args []any) {
	ctx := context.Background()
	if !l.log.Enabled(ctx, level) {
		return
	}

	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // runtime.Callers, write, Info/Debug/...

	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = l.log.Handler().Handle(ctx, r)
}
