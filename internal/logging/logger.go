package logging

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Logger struct {
	*zap.Logger
}

type Options struct {
	Level      string
	Format     string // console / json
	File       string // 为空时仅输出到 stdout
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New 构建 zap logger；配置了 File 时经 lumberjack 滚动写文件
func New(o Options) (*Logger, error) {
	level := zapcore.InfoLevel
	if o.Level != "" {
		if err := level.UnmarshalText([]byte(o.Level)); err != nil {
			return nil, err
		}
	}
	var encCfg zapcore.EncoderConfig
	var enc zapcore.Encoder
	if o.Format == "console" {
		encCfg = zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	}
	syncers := []zapcore.WriteSyncer{zapcore.AddSync(os.Stdout)}
	if o.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   o.File,
			MaxSize:    o.MaxSizeMB,
			MaxBackups: o.MaxBackups,
			MaxAge:     o.MaxAgeDays,
			Compress:   true,
		}
		syncers = append(syncers, zapcore.AddSync(rotator))
	}
	core := zapcore.NewCore(enc, zapcore.NewMultiWriteSyncer(syncers...), level)
	return &Logger{zap.New(core, zap.AddCaller())}, nil
}

type ctxKey string

const (
	TraceIDCtxKey ctxKey = "trace_id"
	UserIDCtxKey  ctxKey = "user_id"
)

// WithContext 附加 trace_id / user_id 字段
func (l *Logger) WithContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return l.Logger
	}
	fields := make([]zap.Field, 0, 2)
	if v, ok := ctx.Value(TraceIDCtxKey).(string); ok && v != "" {
		fields = append(fields, zap.String("trace_id", v))
	}
	if v, ok := ctx.Value(UserIDCtxKey).(int64); ok && v > 0 {
		fields = append(fields, zap.Int64("user_id", v))
	}
	if len(fields) == 0 {
		return l.Logger
	}
	return l.Logger.With(fields...)
}
