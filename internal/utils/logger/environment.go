package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newProductionLoggerConfig() zap.Config {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg
}

func newStagingLoggerConfig() zap.Config {
	cfg := newProductionLoggerConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	return cfg
}

func newDevelopmentLoggerConfig() zap.Config {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg
}

// test logs are built but written nowhere
func newTestLoggerConfig() zap.Config {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.OutputPaths = []string{}
	cfg.ErrorOutputPaths = []string{}
	return cfg
}
