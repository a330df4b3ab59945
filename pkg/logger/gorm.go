package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// maxSQLLength caps the SQL text attached to a log entry
const maxSQLLength = 1000

// GormLogger routes GORM's logging through zap
type GormLogger struct {
	ZapLogger     *zap.Logger
	SlowThreshold time.Duration
	LogLevel      gormlogger.LogLevel
}

var _ gormlogger.Interface = (*GormLogger)(nil)

// NewGormLogger creates a GORM logger. logLevel uses the application's level
// names; debug and info log every statement.
func NewGormLogger(zapLogger *zap.Logger, slowThreshold time.Duration, logLevel string) *GormLogger {
	var level gormlogger.LogLevel
	switch logLevel {
	case "silent":
		level = gormlogger.Silent
	case "error":
		level = gormlogger.Error
	case "info", "debug":
		level = gormlogger.Info
	default:
		level = gormlogger.Warn
	}

	return &GormLogger{
		ZapLogger:     zapLogger,
		SlowThreshold: slowThreshold,
		LogLevel:      level,
	}
}

// LogMode implements gormlogger.Interface
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	newLogger := *l
	newLogger.LogLevel = level
	return &newLogger
}

// Info implements gormlogger.Interface
func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Info {
		WithContext(ctx, l.ZapLogger).Sugar().Infof(msg, data...)
	}
}

// Warn implements gormlogger.Interface
func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Warn {
		WithContext(ctx, l.ZapLogger).Sugar().Warnf(msg, data...)
	}
}

// Error implements gormlogger.Interface
func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormlogger.Error {
		WithContext(ctx, l.ZapLogger).Sugar().Errorf(msg, data...)
	}
}

// Trace implements gormlogger.Interface. Failed statements log at error,
// slow ones at warn and the rest at info.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := []zap.Field{
		zap.Int64("rows", rows),
		zap.Duration("elapsed", elapsed),
	}
	if len(sql) > maxSQLLength {
		fields = append(fields, zap.String("sql", sql[:maxSQLLength]+"..."), zap.Bool("sql_truncated", true))
	} else {
		fields = append(fields, zap.String("sql", sql))
	}

	logger := WithContext(ctx, l.ZapLogger)

	switch {
	// a missing record is an expected outcome for lookups
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		logger.Error("gorm query error", append(fields, zap.Error(err))...)
	case l.SlowThreshold != 0 && elapsed > l.SlowThreshold && l.LogLevel >= gormlogger.Warn:
		logger.Warn("gorm slow query", append(fields, zap.Duration("threshold", l.SlowThreshold))...)
	case l.LogLevel >= gormlogger.Info:
		logger.Info("gorm query", fields...)
	}
}
