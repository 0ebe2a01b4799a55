package ui

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logTimeLayout = "02.01.2006 15:04:05"
	logFileName   = "parser.log"
)

type LogOptions struct {
	Debug bool
	// Dir receives a rotating parser.log; empty disables the file sink.
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	// Console defaults to stderr.
	Console io.Writer
}

// Logger is the printf-style logger used across the parser. It also
// satisfies resty.Logger.
type Logger struct {
	Debug bool

	sugar  *zap.SugaredLogger
	closer io.Closer
}

func NewLogger(opts LogOptions) (*Logger, error) {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder(), zapcore.Lock(zapcore.AddSync(console)), level),
	}

	var closer io.Closer
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return nil, err
		}

		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, logFileName),
			MaxSize:    max(1, opts.MaxSizeMB),
			MaxBackups: opts.MaxBackups,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(encoder(), zapcore.AddSync(rotator), level))
		closer = rotator
	}

	z := zap.New(zapcore.NewTee(cores...))

	return &Logger{Debug: opts.Debug, sugar: z.Sugar(), closer: closer}, nil
}

// NopLogger discards everything.
func NopLogger() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// encoder renders `timestamp - [LEVEL] - message`.
func encoder() zapcore.Encoder {
	cfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.TimeEncoderOfLayout(logTimeLayout),
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " - ",
		EncodeLevel: func(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + l.CapitalString() + "]")
		},
	}

	return zapcore.NewConsoleEncoder(cfg)
}

func (l *Logger) Debugf(format string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Debugf(trimNewline(format), args...)
}

func (l *Logger) Infof(format string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Infof(trimNewline(format), args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Warnf(trimNewline(format), args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	if l == nil {
		return
	}
	l.sugar.Errorf(trimNewline(format), args...)
}

// Close flushes buffered entries and releases the log file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}

	_ = l.sugar.Sync()
	if l.closer != nil {
		return l.closer.Close()
	}

	return nil
}

// zap terminates every entry itself.
func trimNewline(format string) string {
	for len(format) > 0 && format[len(format)-1] == '\n' {
		format = format[:len(format)-1]
	}

	return format
}
