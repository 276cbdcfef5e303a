package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 日志级别映射
var logLevelMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// Logger 日志接口
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
	Fatal(format string, args ...any)
	Sync() error
}

type logger struct {
	log   *zap.Logger
	sugar *zap.SugaredLogger
}

// NewLogger 创建日志实例。logsDir 为空时只输出到 stderr。
func NewLogger(logsDir, level, appName string) (Logger, error) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	logLevel, exists := logLevelMap[strings.ToLower(level)]
	if !exists {
		logLevel = zapcore.InfoLevel
	}

	// stdout 留给解析结果，日志写 stderr
	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(os.Stderr),
			logLevel,
		),
	}

	if logsDir != "" {
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			return nil, fmt.Errorf("create logs dir %s: %w", logsDir, err)
		}
		// 按日期命名的日志文件
		currentDate := time.Now().Format("20060102")
		logFileName := filepath.Join(logsDir, fmt.Sprintf("%s-%s.log", appName, currentDate))
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFileName,
			MaxSize:    100, // megabytes
			MaxBackups: 0,
			MaxAge:     5, // days
			Compress:   true,
			LocalTime:  true,
		})
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			fileWriter,
			logLevel,
		))
	}

	zapLogger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	return &logger{
		log:   zapLogger,
		sugar: zapLogger.Sugar(),
	}, nil
}

// NewNopLogger 不输出任何内容，测试用
func NewNopLogger() Logger {
	zapLogger := zap.NewNop()
	return &logger{
		log:   zapLogger,
		sugar: zapLogger.Sugar(),
	}
}

func (l *logger) Debug(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

func (l *logger) Info(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

func (l *logger) Warn(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

func (l *logger) Error(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}

func (l *logger) Fatal(format string, args ...any) {
	l.sugar.Fatalf(format, args...)
}

func (l *logger) Sync() error {
	return l.log.Sync()
}
