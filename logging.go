package lightloop

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gekko3d/lightloop/config"
)

type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// DefaultLogger is a Logger backed by a zap SugaredLogger.
type DefaultLogger struct {
	level zap.AtomicLevel
	base  zapcore.Level
	sugar *zap.SugaredLogger
}

// NewDefaultLogger builds a console or JSON logger from settings. An unknown
// level falls back to info.
func NewDefaultLogger(prefix string, settings config.LoggingSettings) (*DefaultLogger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(settings.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if settings.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return newDefaultLogger(logger, zapCfg.Level, prefix), nil
}

// NewLoggerFromZap wraps an existing zap logger. level must be the level the
// logger's core was built with for SetDebug to take effect.
func NewLoggerFromZap(logger *zap.Logger, level zap.AtomicLevel, prefix string) *DefaultLogger {
	return newDefaultLogger(logger, level, prefix)
}

func newDefaultLogger(logger *zap.Logger, level zap.AtomicLevel, prefix string) *DefaultLogger {
	if prefix != "" {
		logger = logger.Named(prefix)
	}
	base := level.Level()
	if base == zapcore.DebugLevel {
		base = zapcore.InfoLevel
	}
	return &DefaultLogger{level: level, base: base, sugar: logger.Sugar()}
}

func (l *DefaultLogger) DebugEnabled() bool {
	return l.level.Enabled(zapcore.DebugLevel)
}

// SetDebug switches between debug and the configured level.
func (l *DefaultLogger) SetDebug(enabled bool) {
	if enabled {
		l.level.SetLevel(zapcore.DebugLevel)
		return
	}
	l.level.SetLevel(l.base)
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

// Sync flushes buffered log entries.
func (l *DefaultLogger) Sync() error { return l.sugar.Sync() }

// LoggingModule installs a DefaultLogger as a resource.
type LoggingModule struct {
	Prefix   string
	Settings config.LoggingSettings
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	logger, err := NewDefaultLogger(m.Prefix, m.Settings)
	if err != nil {
		panic(err)
	}
	cmd.AddResources(logger)
}

type nopLogger struct{}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool                { return false }
func (nopLogger) SetDebug(enabled bool)             {}
func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Infof(format string, args ...any)  {}
func (nopLogger) Warnf(format string, args ...any)  {}
func (nopLogger) Errorf(format string, args ...any) {}

// Logger returns the first Logger resource if present, otherwise a no-op logger.
// Safe to call at any time; never returns nil.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
