package logger

import (
	"os"

	"go.uber.org/zap"
)

const logLevelEnv = "LOG_LEVEL"

func NewProductionLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	if value := os.Getenv(logLevelEnv); value != "" {
		level, err := zap.ParseAtomicLevel(value)
		if err != nil {
			return nil, err
		}
		config.Level = level
	}
	return config.Build()
}

func Suggar(logger *zap.Logger) *zap.SugaredLogger {
	return logger.Sugar()
}
