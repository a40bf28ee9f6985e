package utils

import (
	"log"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the process-wide logger.
	Logger   *zap.Logger
	loggerMu sync.Mutex
)

// InitializeLogger sets up the logging configuration.
func InitializeLogger(production bool, level string) {
	var cfg zap.Config

	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
		if !production {
			lvl = zapcore.DebugLevel
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	built, err := cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	loggerMu.Lock()
	Logger = built
	loggerMu.Unlock()
	zap.ReplaceGlobals(built)
}

// GetLogger retrieves the global logger, falling back to a development logger.
func GetLogger() *zap.Logger {
	loggerMu.Lock()
	l := Logger
	loggerMu.Unlock()
	if l == nil {
		InitializeLogger(false, "debug")
		return GetLogger()
	}
	return l
}
