package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"user-crud-service/cmd/api/di"
	"user-crud-service/internal/config"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

// Server struct holds all server dependencies
type Server struct {
	Config    *config.Config
	Logger    *zap.Logger
	Container *di.Container
	GRPC      *grpc.Server
	Gin       *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, l *zap.Logger, c *di.Container) *Server {
	return &Server{
		Config:    cfg,
		Logger:    l,
		Container: c,
		GRPC:      SetupGRPC(c.HealthServer),
		Gin: SetupGinServer(
			c.UserHandler,
			c.HealthHandler,
			c.Registry,
			cfg.App.CORSAllowedOrigins,
			httpAddress(cfg),
			l,
		),
	}
}

// Start runs the REST server, the gRPC server and the health watcher until
// ctx is canceled or one of them fails. It returns once all three stopped.
func (s *Server) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(s.startGin)
	g.Go(s.startGRPC)
	g.Go(func() error {
		interval := time.Duration(s.Config.App.HealthCheckIntervalSeconds) * time.Second
		return s.Container.HealthServer.Run(gctx, interval)
	})
	g.Go(func() error {
		<-gctx.Done()
		return s.shutdown()
	})

	return g.Wait()
}

// startGin serves the REST API. A graceful shutdown is not an error.
func (s *Server) startGin() error {
	s.Logger.Info("Gin REST API running", zap.String("address", s.Gin.Addr))
	if err := s.Gin.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("gin server: %w", err)
	}
	return nil
}

// startGRPC starts the gRPC server
func (s *Server) startGRPC() error {
	lc := net.ListenConfig{}
	lis, err := lc.Listen(context.Background(), "tcp", grpcAddress(s.Config))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.Logger.Info("gRPC server running", zap.String("address", grpcAddress(s.Config)))
	if err := s.GRPC.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc server: %w", err)
	}
	return nil
}

// shutdown stops both servers within the configured timeout
func (s *Server) shutdown() error {
	timeout := time.Duration(s.Config.App.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.Logger.Info("starting graceful shutdown", zap.Duration("timeout", timeout))

	var errs []error

	s.Logger.Info("shutting down Gin server...")
	if err := s.Gin.Shutdown(shutdownCtx); err != nil {
		s.Logger.Error("failed to shutdown Gin server", zap.Error(err))
		errs = append(errs, fmt.Errorf("gin shutdown: %w", err))
	}

	s.Logger.Info("shutting down gRPC server...")
	stopped := make(chan struct{})
	go func() {
		s.GRPC.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		s.GRPC.Stop()
	}

	return errors.Join(errs...)
}

// grpcAddress returns the gRPC server address
func grpcAddress(cfg *config.Config) string {
	return ":" + cfg.App.GRPCPort
}

// httpAddress returns the HTTP server address
func httpAddress(cfg *config.Config) string {
	return ":" + cfg.App.HTTPPort
}
