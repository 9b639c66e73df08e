/*
Package logger holds the process-wide zap logger. The helpers are nil-safe, so
packages log freely before Init and in tests.
*/
package logger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"tgorders/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	log   *zap.Logger
	level = zap.NewAtomicLevel()
)

// Init builds the global logger from cfg. Development environments and debug
// level get the console encoder unless the format is pinned to json.
func Init(cfg *config.LogConfig, env string) error {
	level.SetLevel(parseLevel(cfg.Level))

	sink, err := openSink(cfg)
	if err != nil {
		return err
	}

	core := zapcore.NewCore(newEncoder(cfg.Format, env), sink, level)
	log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return nil
}

func newEncoder(format, env string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeDuration = zapcore.SecondsDurationEncoder

	console := format == "console" ||
		(format != "json" && (env == "dev" || env == "development" || level.Level() == zapcore.DebugLevel))
	if console {
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

// openSink returns stdout, or a rotating file when cfg.Output is "file".
func openSink(cfg *config.LogConfig) (zapcore.WriteSyncer, error) {
	if cfg.Output != "file" {
		return zapcore.AddSync(os.Stdout), nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     7,
		Compress:   true,
	}), nil
}

// parseLevel falls back to info for anything zap does not recognise.
func parseLevel(s string) zapcore.Level {
	l, err := zapcore.ParseLevel(s)
	if err != nil || l < zapcore.DebugLevel || l > zapcore.ErrorLevel {
		return zapcore.InfoLevel
	}
	return l
}

func Get() *zap.Logger { return log }

// Replace swaps the global logger and returns a func restoring the previous one.
func Replace(l *zap.Logger) (restore func()) {
	prev := log
	log = l
	return func() { log = prev }
}

// UpdateLevel changes the level of a logger built by Init without rebuilding it.
func UpdateLevel(s string) {
	level.SetLevel(parseLevel(s))
}

// Sync flushes buffered entries. Syncing a terminal or pipe fails on most
// platforms; those errors are dropped.
func Sync() error {
	if log == nil {
		return nil
	}
	err := log.Sync()
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EBADF) {
		return nil
	}
	return err
}

func current() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

func With(fields ...zap.Field) *zap.Logger { return current().With(fields...) }

func WithRequestID(requestID string) *zap.Logger {
	return current().With(zap.String("request_id", requestID))
}

func Debug(msg string, fields ...zap.Field) { current().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { current().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { current().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { current().Error(msg, fields...) }
