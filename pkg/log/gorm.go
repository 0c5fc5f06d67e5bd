package log

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormLogger forwards GORM's SQL logging into a LoggerService.
type GormLogger struct {
	log           LoggerService
	level         logger.LogLevel
	slowThreshold time.Duration
}

var _ logger.Interface = (*GormLogger)(nil)

func NewGormLogger(log LoggerService, level logger.LogLevel, slowThreshold time.Duration) *GormLogger {
	if level == 0 {
		level = logger.Warn
	}
	return &GormLogger{
		log:           log,
		level:         level,
		slowThreshold: slowThreshold,
	}
}

// ParseGormLevel maps a configured level name onto GORM's log levels.
func ParseGormLevel(level string) logger.LogLevel {
	switch Parse(level) {
	case Debug:
		return logger.Info
	case Info, Warn:
		return logger.Warn
	case Error:
		return logger.Error
	default:
		return logger.Silent
	}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Info {
		l.log.Info(msg, args...)
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Warn {
		l.log.Warn(msg, args...)
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Error {
		l.log.Error(msg, args...)
	}
}

func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		l.log.Error("%s [%s] rows=%d: %v", sql, elapsed, rows, err)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		sql, rows := fc()
		l.log.Warn("slow query (>%s) %s [%s] rows=%d", l.slowThreshold, sql, elapsed, rows)
	case l.level >= logger.Info:
		sql, rows := fc()
		l.log.Debug("%s [%s] rows=%d", sql, elapsed, rows)
	}
}
