package log

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type (
	Field  = zap.Field
	Level  = zapcore.Level
	Logger struct {
		l     *zap.Logger
		level zap.AtomicLevel
		name  string
	}
)

// field helpers, re-exported so callers don't need to import zap
var (
	Skip       = zap.Skip
	Binary     = zap.Binary
	Bool       = zap.Bool
	Duration   = zap.Duration
	Float64    = zap.Float64
	Int        = zap.Int
	Int32      = zap.Int32
	Int64      = zap.Int64
	Uint32     = zap.Uint32
	String     = zap.String
	Time       = zap.Time
	Any        = zap.Any
	ErrorField = zap.Error

	DebugLevel = zapcore.DebugLevel
	InfoLevel  = zapcore.InfoLevel
	WarnLevel  = zapcore.WarnLevel
	ErrorLevel = zapcore.ErrorLevel
	FatalLevel = zapcore.FatalLevel
)

func (l *Logger) Debug(msg string, fields ...Field) { l.l.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...Field)  { l.l.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...Field)  { l.l.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...Field) { l.l.Error(msg, fields...) }
func (l *Logger) Fatal(msg string, fields ...Field) { l.l.Fatal(msg, fields...) }
func (l *Logger) Sync() error                       { return l.l.Sync() }
func (l *Logger) SetLevel(level Level)              { l.level.SetLevel(level) }
func (l *Logger) Sugar() *zap.SugaredLogger         { return l.l.Sugar() }

// Named returns a logger for the given sub scope. The level may be
// customized per name via the loggers section of the config file.
func (l *Logger) Named(name string) *Logger {
	combined := name
	if l.name != "" {
		combined = fmt.Sprintf("%s.%s", l.name, name)
	}
	return defaultManager.GetLoggerByName(combined)
}

type Config struct {
	DefaultLevel string            `yaml:"defaultLevel"`
	Loggers      map[string]string `yaml:"loggers"`
}

func DefaultConfig() *Config {
	return &Config{DefaultLevel: "info", Loggers: map[string]string{}}
}

func LoadConfig(fileName string) (*Config, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

type LoggerManager struct {
	mu      sync.Mutex
	cfg     *Config
	encoder zapcore.Encoder
	sink    zapcore.WriteSyncer
	loggers map[string]*Logger
}

var (
	defaultManager *LoggerManager
	defaultLogger  *Logger
)

//nolint:gochecknoinits // default logger must be usable without setup
func init() {
	defaultManager = NewLoggerManager(DefaultConfig(), "info", "text")
	defaultLogger = defaultManager.GetDefaultLogger()
}

func NewLoggerManager(cfg *Config, level, format string) *LoggerManager {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if level != "" {
		cfg.DefaultLevel = level
	}
	return &LoggerManager{
		cfg:     cfg,
		encoder: enc,
		sink:    zapcore.Lock(os.Stderr),
		loggers: map[string]*Logger{},
	}
}

func (m *LoggerManager) GetDefaultLogger() *Logger {
	return m.GetLoggerByName("")
}

func (m *LoggerManager) GetLoggerByName(name string) *Logger {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.loggers[name]; ok {
		return l
	}
	lvl := m.resolveLevel(name)
	atom := zap.NewAtomicLevelAt(lvl)
	core := zapcore.NewCore(m.encoder, m.sink, atom)
	zl := zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))
	if name != "" {
		zl = zl.Named(name)
	}
	l := &Logger{l: zl, level: atom, name: name}
	m.loggers[name] = l
	return l
}

func (m *LoggerManager) resolveLevel(name string) Level {
	if arg, ok := m.cfg.Loggers[name]; ok {
		return ParseLevel(arg)
	}
	return ParseLevel(m.cfg.DefaultLevel)
}

func ParseLevel(arg string) Level {
	lvl, err := zapcore.ParseLevel(arg)
	if err != nil {
		return InfoLevel
	}
	return lvl
}

// InitLoggerManager replaces the default manager (called once from the CLI).
func InitLoggerManager(cfg *Config, level, format string) {
	defaultManager = NewLoggerManager(cfg, level, format)
	defaultLogger = defaultManager.GetDefaultLogger()
}

func Default() *Logger { return defaultLogger }

func GetLoggerManager() *LoggerManager { return defaultManager }

// package level helpers on the default logger
func Debug(msg string, fields ...Field) { defaultLogger.Debug(msg, fields...) }
func Info(msg string, fields ...Field)  { defaultLogger.Info(msg, fields...) }
func Warn(msg string, fields ...Field)  { defaultLogger.Warn(msg, fields...) }
func Error(msg string, fields ...Field) { defaultLogger.Error(msg, fields...) }
func Fatal(msg string, fields ...Field) { defaultLogger.Fatal(msg, fields...) }

type ctxKey struct{}

func AddToContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func GetFromContext(ctx context.Context) *Logger {
	if l, ok := ctx.Value(ctxKey{}).(*Logger); ok {
		return l
	}
	return defaultLogger
}
