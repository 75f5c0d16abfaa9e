// Package logger configures the zap logger shared by the CLI and the
// scraping pipeline.
//
// Console output goes to stderr so result tables on stdout stay clean for
// piping. An optional file sink rotates through lumberjack.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a console logger writing to stderr. Verbose enables debug
// level, otherwise only warnings and errors surface; progress stays quiet
// unless asked for.
func New(verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		consoleEncoder(),
		zapcore.Lock(zapcore.AddSync(os.Stderr)),
		level,
	)
	return zap.New(core)
}

// NewWithFile creates a logger that writes the console stream to stderr
// and a full debug JSON stream to a rotating file. The returned closer
// must be closed before process exit to flush the file sink.
func NewWithFile(verbose bool, path string) (*zap.Logger, io.Closer) {
	rotator := &lumberjack.Logger{
		Filename:  path,
		MaxSize:   50, // megabytes
		LocalTime: true,
		Compress:  true,
	}

	consoleLevel := zapcore.WarnLevel
	if verbose {
		consoleLevel = zapcore.DebugLevel
	}
	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder(), zapcore.Lock(zapcore.AddSync(os.Stderr)), consoleLevel),
		zapcore.NewCore(jsonEncoder(), zapcore.AddSync(rotator), zapcore.DebugLevel),
	)
	return zap.New(core), rotator
}

func consoleEncoder() zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func jsonEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(cfg)
}
