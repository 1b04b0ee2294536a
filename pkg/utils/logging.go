package utils

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// Logger returns the process-wide zap logger. With LOG_FILE set, log output
// is teed to that file and stdout as JSON; otherwise it is the plain
// production logger.
func Logger() *zap.Logger {
	if logger != nil { return logger }
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logger, _ = zap.NewProduction()
		return logger
	}
	_ = os.MkdirAll(filepath.Dir(logFile), 0o755)
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		logger, _ = zap.NewProduction()
		return logger
	}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	cores := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.AddSync(f), zapcore.InfoLevel),
		zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), zapcore.InfoLevel),
	)
	logger = zap.New(cores)
	return logger
}
