package utils

import (
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogOptions struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns a process-wide logger configured from LOG_LEVEL and LOG_FILE.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		l, err := NewLogger(LogOptions{Level: os.Getenv("LOG_LEVEL"), File: os.Getenv("LOG_FILE")})
		if err != nil {
			l, _ = zap.NewProduction()
		}
		logger = l
	})
	return logger
}

// NewLogger builds a JSON logger on stdout, teed to a rotating file when
// opts.File is set.
func NewLogger(opts LogOptions) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if opts.Level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(opts.Level))); err != nil {
			return nil, err
		}
	}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.Lock(os.Stdout), lvl)}
	if opts.File != "" {
		size := opts.MaxSizeMB
		if size <= 0 {
			size = 50
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    size,
			MaxBackups: opts.MaxBackups,
			Compress:   true,
		}), lvl))
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
