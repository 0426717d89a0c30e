// Package log 把每次探测的结果写入滚动日志文件
//
//	logger := log.New("scan.log", sessionID)
//	defer logger.Sync()
//	logger.Probe(outcome)
package log

import (
	"time"

	"TcpScannerGo/internal/portscan"
	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ProbeLogger 诊断日志, 不参与结果集
type ProbeLogger struct {
	log *zap.Logger
}

// New path 为空时返回不写任何内容的 logger
func New(path, session string) *ProbeLogger {
	if path == "" {
		return &ProbeLogger{log: zap.NewNop()}
	}
	core := zapcore.NewCore(getEncoder(), getLogWriter(path), zapcore.DebugLevel)
	return &ProbeLogger{
		log: zap.New(core).With(zap.String("session", session)),
	}
}

// Probe 记录一次探测, 包括数据模型之外的原始错误
func (l *ProbeLogger) Probe(o portscan.Outcome) {
	fields := []zap.Field{
		zap.String("ip", o.Result.IP),
		zap.Int("port", o.Result.Port),
		zap.Stringer("status", o.Result.Status),
		zap.Duration("elapsed", o.Elapsed),
	}
	if o.Err != nil {
		fields = append(fields, zap.String("detail", o.Err.Error()))
	}
	l.log.Debug("probe", fields...)
}

func (l *ProbeLogger) Info(msg string, fields ...zap.Field) {
	l.log.Info(msg, fields...)
}

func (l *ProbeLogger) Warn(msg string, fields ...zap.Field) {
	l.log.Warn(msg, fields...)
}

func (l *ProbeLogger) Sync() error {
	return l.log.Sync()
}

func getEncoder() zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.LineEnding = zapcore.DefaultLineEnding
	encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	encoderConfig.EncodeTime = timeEncoder
	encoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(time.RFC3339Nano))
}

func getLogWriter(path string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    60,
		MaxBackups: 6,
		MaxAge:     60,
	})
}
