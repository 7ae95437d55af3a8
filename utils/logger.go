package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the process-wide structured logger
	Logger *zap.Logger
	sugar  *zap.SugaredLogger
)

// InitLogger writes console lines to stdout and JSON lines to the append-only logFile.
// An empty logFile logs to stdout only.
func InitLogger(logFile, level string) error {
	lvl := zapcore.DebugLevel
	if level != "" {
		if err := lvl.Set(strings.ToLower(level)); err != nil {
			return fmt.Errorf("invalid log level %q: %v", level, err)
		}
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(os.Stdout), lvl),
	}

	if logFile != "" {
		if dir := filepath.Dir(logFile); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create log directory: %v", err)
			}
		}
		file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %v", err)
		}
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(file), lvl))
	}

	SetLogger(zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1)))
	return nil
}

// SetLogger replaces the process-wide logger. Call it before serving requests.
func SetLogger(l *zap.Logger) {
	Logger = l
	sugar = l.Sugar()
}

// SyncLogger flushes buffered log entries
func SyncLogger() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// LogInfo logs an informational message
func LogInfo(format string, v ...interface{}) {
	if sugar != nil {
		sugar.Infof(format, v...)
	}
}

// LogWarn logs a warning
func LogWarn(format string, v ...interface{}) {
	if sugar != nil {
		sugar.Warnf(format, v...)
	}
}

// LogError logs an error message
func LogError(format string, v ...interface{}) {
	if sugar != nil {
		sugar.Errorf(format, v...)
	}
}

// LogDebug logs a debug message
func LogDebug(format string, v ...interface{}) {
	if sugar != nil {
		sugar.Debugf(format, v...)
	}
}

// LogRequest logs HTTP request details
func LogRequest(method, path, ip, requestID string, status int, duration time.Duration) {
	if Logger != nil {
		Logger.Info("request",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("ip", ip),
			zap.String("request_id", requestID),
			zap.Int("status", status),
			zap.Duration("duration", duration),
		)
	}
}

// LogErrorWithStack logs an error with stack trace
func LogErrorWithStack(err error, stack []byte) {
	if Logger != nil {
		Logger.Error("panic recovered", zap.Error(err), zap.ByteString("stack", stack))
	}
}
