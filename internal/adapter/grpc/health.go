package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the gRPC health service name reported for the user API
const ServiceName = "user.UserService"

// Pinger reports whether the store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthServer publishes the store's reachability over the standard gRPC
// health protocol, both for the overall server ("") and for ServiceName.
type HealthServer struct {
	*health.Server
	db  Pinger
	log *zap.Logger
}

// NewHealthServer creates a HealthServer. Status starts as NOT_SERVING until the first check.
func NewHealthServer(db Pinger, log *zap.Logger) *HealthServer {
	s := &HealthServer{
		Server: health.NewServer(),
		db:     db,
		log:    log,
	}
	s.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// CheckNow pings the store once and updates the published status
func (s *HealthServer) CheckNow(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.db.PingContext(ctx); err != nil {
		s.log.Warn("database ping failed", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.set(status)
	return status
}

// Run re-checks the store every interval until ctx is done, then marks the
// server as shutting down so clients stop routing to it.
func (s *HealthServer) Run(ctx context.Context, interval time.Duration) error {
	s.CheckNow(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Shutdown()
			return nil
		case <-ticker.C:
			s.CheckNow(ctx)
		}
	}
}

func (s *HealthServer) set(status healthpb.HealthCheckResponse_ServingStatus) {
	s.SetServingStatus("", status)
	s.SetServingStatus(ServiceName, status)
}
