package infrastructure

import (
	"fmt"
	"time"

	"user-crud-service/internal/adapter/db/gormrepo"
	"user-crud-service/internal/config"
	"user-crud-service/pkg/logger"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewDatabase opens PostgreSQL when DATABASE_URL is set and a SQLite file
// otherwise, configures the pool and migrates the users table.
func NewDatabase(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	slow := time.Duration(cfg.DB.SlowQuerySeconds * float64(time.Second))
	gormLogger := logger.NewGormLogger(l, slow, cfg.Logger.Level)

	dialector := sqlite.Open(cfg.DB.SQLitePath)
	driver := "sqlite"
	if cfg.DB.UsePostgres() {
		dialector = pgdriver.Open(cfg.DB.DSN())
		driver = "postgres"
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pool configuration
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DB.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.DB.ConnMaxIdleTime) * time.Second)

	if err := gormrepo.AutoMigrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	l.Info("database connected successfully",
		zap.String("driver", driver),
		zap.Int("max_open_conns", cfg.DB.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.DB.MaxIdleConns),
		zap.Int("conn_max_lifetime_seconds", cfg.DB.ConnMaxLifetime),
		zap.Int("conn_max_idle_time_seconds", cfg.DB.ConnMaxIdleTime),
	)

	return db, nil
}

// CloseDatabase closes the database connection
func CloseDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}
