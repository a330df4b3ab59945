package server

import (
	grpcadapter "user-crud-service/internal/adapter/grpc"
	"user-crud-service/pkg/logger"

	grpc "google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// SetupGRPC creates the gRPC server that carries the health service
func SetupGRPC(healthServer *grpcadapter.HealthServer) *grpc.Server {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logger.RequestIDInterceptor(),
		),
	)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	return grpcServer
}
