package logx

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Fields is a set of key/value pairs attached to a log line
type Fields map[string]interface{}

// Logger is the main logger instance. It wraps a zerolog.Logger so the rest of the
// module only depends on the logx API.
type Logger struct {
	config   *Config
	mu       sync.RWMutex
	zl       zerolog.Logger
	exitFunc func(int)
}

// NewLogger creates a new logger with the given config
func NewLogger(config *Config) *Logger {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Output == nil {
		config.Output = os.Stdout
	}

	l := &Logger{
		config:   config,
		exitFunc: os.Exit,
	}
	l.zl = l.build(config.Output)
	return l
}

// build assembles the zerolog logger for w from the current config.
func (l *Logger) build(w io.Writer) zerolog.Logger {
	switch l.config.TimeFormat {
	case "unix":
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	case "unixmilli":
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs
	case "":
	default:
		zerolog.TimeFieldFormat = l.config.TimeFormat
	}

	if l.config.Format == FormatConsole {
		cw := zerolog.ConsoleWriter{
			Out:     w,
			NoColor: !l.config.EnableColors,
		}
		if l.config.TimeFormat != "unix" && l.config.TimeFormat != "unixmilli" {
			cw.TimeFormat = l.config.TimeFormat
		}
		w = cw
	}

	ctx := zerolog.New(w).With()
	if l.config.EnableTimestamp {
		ctx = ctx.Timestamp()
	}
	if l.config.EnableCaller {
		// logx adds two frames (package func or Entry method, then log)
		ctx = ctx.CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + 2)
	}
	return ctx.Logger().Level(l.config.Level.zerolog())
}

// SetLevel sets the log level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.config.Level = level
	l.zl = l.zl.Level(level.zerolog())
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() Level {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.config.Level
}

// SetOutput sets the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.config.Output = w
	l.zl = l.build(w)
}

// log is the internal logging method
func (l *Logger) log(level Level, msg string, fields Fields, data interface{}, err error) {
	l.mu.RLock()
	enabled := l.config.Level.Enabled(level) && level != LevelOff
	zl := l.zl
	l.mu.RUnlock()

	if !enabled {
		return
	}

	// WithLevel never exits or panics; Fatal exit is handled by the caller.
	ev := zl.WithLevel(level.zerolog())
	if ev == nil {
		return
	}
	if len(fields) > 0 {
		ev = ev.Fields(map[string]interface{}(fields))
	}
	if err != nil {
		ev = ev.Err(err)
	}
	if data != nil {
		ev = ev.Interface("data", data)
	}
	ev.Msg(msg)
}

// WithField creates a new entry with a field
func (l *Logger) WithField(key string, value interface{}) *Entry {
	return newEntry(l).WithField(key, value)
}

// WithFields creates a new entry with fields
func (l *Logger) WithFields(fields Fields) *Entry {
	return newEntry(l).WithFields(fields)
}

// WithError creates a new entry with an error
func (l *Logger) WithError(err error) *Entry {
	return newEntry(l).WithError(err)
}

// WithStruct creates a new entry with structured data
func (l *Logger) WithStruct(data interface{}) *Entry {
	return newEntry(l).WithStruct(data)
}

// exit calls the exit function (swappable in tests)
func (l *Logger) exit(code int) {
	l.exitFunc(code)
}
