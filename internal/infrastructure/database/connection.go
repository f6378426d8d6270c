package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	sharedconfig "helpdesk/internal/shared/config"
	"helpdesk/internal/shared/logger"
)

var db *gorm.DB

// Init opens the MySQL connection pool described by cfg and verifies it
// with a ping. Safe to call once at startup.
func Init(cfg *sharedconfig.DatabaseConfig) error {
	gormCfg := &gorm.Config{
		Logger: newSlogGormLogger(logger.Get()),
	}

	conn, err := gorm.Open(mysql.Open(cfg.GetDSN()), gormCfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("acquire sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	db = conn
	return nil
}

// Get returns the shared *gorm.DB. It panics when called before Init.
func Get() *gorm.DB {
	if db == nil {
		panic("database: Get called before Init")
	}
	return db
}

// Close releases the underlying connection pool.
func Close() error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// slogGormLogger adapts GORM's logger interface onto the application logger
// so SQL diagnostics share one sink with everything else.
type slogGormLogger struct {
	log           *slog.Logger
	slowThreshold time.Duration
}

func newSlogGormLogger(log *slog.Logger) gormlogger.Interface {
	return &slogGormLogger{log: log, slowThreshold: 200 * time.Millisecond}
}

func (l *slogGormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface { return l }

func (l *slogGormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.log.InfoContext(ctx, fmt.Sprintf(msg, args...))
}

func (l *slogGormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.log.WarnContext(ctx, fmt.Sprintf(msg, args...))
}

func (l *slogGormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.log.ErrorContext(ctx, fmt.Sprintf(msg, args...))
}

func (l *slogGormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	switch {
	case err != nil && err != gorm.ErrRecordNotFound:
		sql, rows := fc()
		l.log.ErrorContext(ctx, "sql error", "error", err, "sql", sql, "rows", rows, "elapsed", elapsed)
	case elapsed > l.slowThreshold:
		sql, rows := fc()
		l.log.WarnContext(ctx, "slow sql", "sql", sql, "rows", rows, "elapsed", elapsed)
	}
}
