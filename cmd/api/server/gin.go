package server

import (
	"net/http"
	"time"

	ginhandler "user-crud-service/internal/adapter/gin/handler"
	ginrouter "user-crud-service/internal/adapter/gin/router"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(
	userHandler *ginhandler.UserHandler,
	healthHandler *ginhandler.HealthHandler,
	registry *prometheus.Registry,
	allowOrigins []string,
	ginAddr string,
	l *zap.Logger,
) *http.Server {
	router := ginrouter.SetupRouter(userHandler, healthHandler, ginrouter.Options{
		AllowOrigins: allowOrigins,
		Registry:     registry,
	}, l)

	l.Info("Gin REST API configured", zap.String("address", ginAddr))

	return &http.Server{
		Addr:              ginAddr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
