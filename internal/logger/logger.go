// Package logger holds the process-wide zap logger used by the layout tools.
package logger

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects encoder and level.
type Config struct {
	// Env is "dev" (coloured console) or "prod" (JSON). Default "dev".
	Env string

	// Level is the minimum level: "debug", "info", "warn", "error".
	// Default "info".
	Level string

	// Output is a file path, "stdout" or "stderr". Default "stderr".
	Output string
}

var (
	mu       sync.Mutex
	instance *zap.Logger

	// fallback receives logs when Output cannot be opened
	fallback zapcore.WriteSyncer = zapcore.Lock(os.Stderr)
)

// Init builds the logger from cfg and installs it. Later calls replace the
// previous logger, so a command can reconfigure after flags are parsed.
func Init(cfg Config) *zap.Logger {
	l := build(cfg)

	mu.Lock()
	instance = l
	mu.Unlock()

	return l
}

// L returns the installed logger, building a dev/info one on first use.
func L() *zap.Logger {
	mu.Lock()
	l := instance
	mu.Unlock()

	if l == nil {
		return Init(Config{})
	}
	return l
}

// Named returns a logger for a component.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// Sync flushes buffered entries.
func Sync() error {
	mu.Lock()
	defer mu.Unlock()
	if instance != nil {
		return instance.Sync()
	}
	return nil
}

func build(cfg Config) *zap.Logger {
	level := ParseLevel(cfg.Level)

	var zcfg zap.Config
	if strings.ToLower(cfg.Env) == "prod" {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zcfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		zcfg.DisableStacktrace = true
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	// Program output owns stdout; logs go to stderr unless told otherwise.
	output := strings.TrimSpace(cfg.Output)
	if output == "" {
		output = "stderr"
	}
	zcfg.OutputPaths = []string{output}

	l, err := zcfg.Build()
	if err != nil {
		l = zap.New(zapcore.NewCore(
			zapcore.NewConsoleEncoder(zcfg.EncoderConfig), fallback, zcfg.Level))
		l.Warn("log output unavailable, logging to stderr",
			zap.String("output", output), zap.Error(err))
	}
	return l
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
