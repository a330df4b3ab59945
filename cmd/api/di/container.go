package di

import (
	"database/sql"
	"errors"
	"fmt"

	"user-crud-service/cmd/api/infrastructure"
	"user-crud-service/internal/adapter/db/gormrepo"
	ginhandler "user-crud-service/internal/adapter/gin/handler"
	grpcadapter "user-crud-service/internal/adapter/grpc"
	"user-crud-service/internal/config"
	"user-crud-service/internal/usecase/user"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            *gorm.DB
	SQLDB         *sql.DB
	UserUC        user.Usecase
	UserHandler   *ginhandler.UserHandler
	HealthHandler *ginhandler.HealthHandler
	HealthServer  *grpcadapter.HealthServer
	Registry      *prometheus.Registry
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	repo := gormrepo.NewUserRepo(db, l)
	userUC := user.New(repo, l)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(sqlDB, cfg.Logger.ServiceName),
	)

	return &Container{
		Config:        cfg,
		Logger:        l,
		DB:            db,
		SQLDB:         sqlDB,
		UserUC:        userUC,
		UserHandler:   ginhandler.NewUserHandler(userUC, l),
		HealthHandler: ginhandler.NewHealthHandler(sqlDB, cfg.Logger.ServiceName, l),
		HealthServer:  grpcadapter.NewHealthServer(sqlDB, l),
		Registry:      registry,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}
