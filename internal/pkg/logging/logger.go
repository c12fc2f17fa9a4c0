package logging

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogConfig struct {
	Level        string `json:"level" yaml:"level"`               // minimum level to collect: debug<info<warn<error<fatal
	FileName     string `json:"fileName" yaml:"fileName"`         // log file path; empty disables file output
	MaxSize      int    `json:"maxSize" yaml:"maxSize"`           // max size in MB of a log file before rotation
	MaxAge       int    `json:"maxAge" yaml:"maxAge"`             // max days to keep rotated files
	MaxBackups   int    `json:"maxBackups" yaml:"maxBackups"`     // max number of rotated files to keep
	IsStdout     bool   `json:"isStdout" yaml:"isStdout"`         // also write to stdout
	IsStackTrace bool   `json:"isStackTrace" yaml:"isStackTrace"` // attach stack traces to error logs
}

// DefaultConfig is used when the config file carries no log block.
func DefaultConfig() *LogConfig {
	return &LogConfig{
		Level:    "info",
		IsStdout: true,
	}
}

// InitLogger builds the logger from lCfg and installs it as the zap global.
func InitLogger(lCfg *LogConfig) error {
	if lCfg == nil {
		lCfg = DefaultConfig()
	}

	level, err := zapcore.ParseLevel(lCfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	writeSyncer := getLogWriter(lCfg.FileName, lCfg.MaxSize, lCfg.MaxBackups, lCfg.MaxAge, lCfg.IsStdout)
	encoder := getEncoder()

	core := zapcore.NewCore(encoder, writeSyncer, level)
	var logger *zap.Logger
	if lCfg.IsStackTrace {
		logger = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	} else {
		logger = zap.New(core, zap.AddCaller())
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// getEncoder sets the encoding of log records.
func getEncoder() zapcore.Encoder {
	encodeConfig := zap.NewProductionEncoderConfig()
	encodeConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("2006-01-02 15:04:05.000"))
	}
	encodeConfig.TimeKey = "time"
	encodeConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encodeConfig.EncodeCaller = zapcore.ShortCallerEncoder
	return zapcore.NewJSONEncoder(encodeConfig)
}

// getLogWriter decides where log records are written.
func getLogWriter(filename string, maxsize, maxBackup, maxAge int, isStdout bool) zapcore.WriteSyncer {
	if filename == "" {
		return zapcore.AddSync(os.Stdout)
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    maxsize,
		MaxAge:     maxAge,
		MaxBackups: maxBackup,
		Compress:   true,
	}
	if isStdout {
		return zapcore.NewMultiWriteSyncer(zapcore.AddSync(lumberJackLogger), zapcore.AddSync(os.Stdout))
	}
	return zapcore.AddSync(lumberJackLogger)
}
