package logger

import (
	"github.com/Guimenn/mobiliai-inventory/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger = zap.NewNop()

// Init builds the service logger from config and installs it as the zap
// global so libraries using zap.L() share the same sink.
func Init(cfg *config.LoggerConfig, appEnv string) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if appEnv == "production" {
		zapCfg = zap.NewProductionConfig()
		zapCfg.EncoderConfig.TimeKey = "timestamp"
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.Encoding != "" {
		zapCfg.Encoding = cfg.Encoding
	}
	zapCfg.DisableCaller = cfg.DisableCaller
	zapCfg.DisableStacktrace = cfg.DisableStacktrace

	built, err := zapCfg.Build(zap.Fields(
		zap.String("service", "mobiliai-inventory"),
		zap.String("environment", appEnv),
	))
	if err != nil {
		return nil, err
	}

	log = built
	zap.ReplaceGlobals(log)
	return log, nil
}

// GetLogger returns the global logger instance.
func GetLogger() *zap.Logger {
	return log
}
