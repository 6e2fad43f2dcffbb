package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config 日志配置
type Config struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string
	// File 日志文件路径，stderr 或 stdout 表示仅输出到终端
	File string
	// Production 是否启用 JSON 输出
	Production bool
}

// NewLogger creates a zap logger from Config.
// A file target is written in addition to stderr so the console stays
// readable while the file keeps the full history.
// NewLogger 根据配置创建 zap 日志器
// 配置文件目标时会同时输出到 stderr，终端保持可读，文件保留完整历史
func NewLogger(cfg Config) (*zap.Logger, error) {

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.WarnLevel
	}

	var encoder zapcore.Encoder
	if cfg.Production {
		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var writer zapcore.WriteSyncer
	switch cfg.File {
	case "", "stderr":
		writer = zapcore.Lock(os.Stderr)
	case "stdout":
		writer = zapcore.Lock(os.Stdout)
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, err
		}
		file, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		writer = zapcore.NewMultiWriteSyncer(zapcore.Lock(os.Stderr), zapcore.AddSync(file))
	}

	core := zapcore.NewCore(encoder, writer, level)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
