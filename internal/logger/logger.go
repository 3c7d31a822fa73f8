package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init builds the process-wide logger and installs it as zap.L().
func Init(environment string) error {
	logger, err := New(environment)
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(logger)

	return nil
}

func New(environment string) (*zap.Logger, error) {
	var conf zap.Config

	switch environment {
	case "production", "staging":
		conf = zap.NewProductionConfig()
		conf.EncoderConfig.TimeKey = "time"
		conf.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	case "test":
		return zap.NewNop(), nil
	default:
		conf = zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := conf.Build()
	if err != nil {
		return nil, fmt.Errorf("conf.Build -> %w", err)
	}

	return logger.With(zap.String("env", environment)), nil
}
