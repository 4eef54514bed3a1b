package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	LogLevel zapcore.Level `yaml:"level" envconfig:"LOG_LEVEL"`
	Sink     string        `yaml:"sink" envconfig:"LOG_SINK"`
}

// NewLogger builds a json zap logger named after the component.
// An empty Sink writes to stdout.
func NewLogger(cfg Log, name string) *zap.Logger {
	sink := cfg.Sink
	if sink == "" {
		sink = "stdout"
	}
	zcfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(cfg.LogLevel),
		Development:      cfg.LogLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{sink},
		ErrorOutputPaths: []string{"stderr"},
	}
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	log, err := zcfg.Build()
	if err != nil {
		log = zap.NewExample()
		log.Warn("logger build, fallback to example", zap.Error(err))
	}
	return log.Named(name)
}
