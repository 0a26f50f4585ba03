package utils

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel enumerates severity tiers.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l LogLevel) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// ParseLogLevel maps a config string such as "debug" to a LogLevel.
// Unknown names fall back to INFO.
func ParseLogLevel(s string) LogLevel {
	for i, n := range levelNames {
		if strings.EqualFold(n, s) {
			return LogLevel(i)
		}
	}
	return INFO
}

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARN:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	case FATAL:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// LogFileOptions controls the rotating log file sink.
type LogFileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
}

// Logger is the levelled logger shared by every controller.
type Logger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
	file  *lumberjack.Logger
}

var (
	globalMu     sync.RWMutex
	globalLogger *Logger
)

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// InitLogger builds the global logger. Stdout is always included; a rotating
// file sink is added when opts.Path is set.
func InitLogger(minLevel LogLevel, opts LogFileOptions) *Logger {
	level := zap.NewAtomicLevelAt(minLevel.zapLevel())
	enc := zapcore.NewConsoleEncoder(encoderConfig())

	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.Lock(os.Stdout), level),
	}

	var file *lumberjack.Logger
	if opts.Path != "" {
		file = &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(file), level))
	}

	l := &Logger{
		sugar: zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)).Sugar(),
		level: level,
		file:  file,
	}
	SetLogger(l)
	return l
}

// NewLoggerFromZap wraps an existing zap logger. Tests use it with
// zaptest/observer to inspect output.
func NewLoggerFromZap(z *zap.Logger) *Logger {
	return &Logger{
		sugar: z.WithOptions(zap.AddCallerSkip(1)).Sugar(),
		level: zap.NewAtomicLevelAt(zapcore.DebugLevel),
	}
}

// SetLogger replaces the global logger.
func SetLogger(l *Logger) {
	globalMu.Lock()
	globalLogger = l
	globalMu.Unlock()
}

// L returns the global logger, creating a stdout DEBUG logger on first use.
func L() *Logger {
	globalMu.RLock()
	l := globalLogger
	globalMu.RUnlock()
	if l == nil {
		return InitLogger(DEBUG, LogFileOptions{})
	}
	return l
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(lvl LogLevel) {
	l.level.SetLevel(lvl.zapLevel())
}

// Enabled reports whether entries at lvl are currently written.
func (l *Logger) Enabled(lvl LogLevel) bool {
	return l.level.Enabled(lvl.zapLevel())
}

// Close flushes buffered entries and closes the log file, if any.
func (l *Logger) Close() {
	_ = l.sugar.Sync()
	if l.file != nil {
		_ = l.file.Close()
	}
}

func (l *Logger) Debug(f string, a ...any) { l.sugar.Debugf(f, a...) }
func (l *Logger) Info(f string, a ...any)  { l.sugar.Infof(f, a...) }
func (l *Logger) Warn(f string, a ...any)  { l.sugar.Warnf(f, a...) }
func (l *Logger) Error(f string, a ...any) { l.sugar.Errorf(f, a...) }
func (l *Logger) Fatal(f string, a ...any) { l.sugar.Fatalf(f, a...) }
