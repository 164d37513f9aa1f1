package utilities

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// HealthCheckFunc reports whether a dependency of the service is usable.
type HealthCheckFunc func(ctx context.Context) error

// RegisterHealthServer registers the gRPC health check service and returns it so the
// caller can flip the serving status later.
func RegisterHealthServer(grpcServer *grpc.Server) *health.Server {
	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	return healthServer
}

// WatchHealth runs check every interval and mirrors the outcome as the serving status of
// both service and the overall server (the empty name). It blocks until ctx is done and
// then marks every service as NOT_SERVING.
func WatchHealth(
	ctx context.Context,
	healthServer *health.Server,
	service string,
	interval time.Duration,
	check HealthCheckFunc,
	logger *zerolog.Logger,
) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := grpc_health_v1.HealthCheckResponse_UNKNOWN
	for {
		status := probe(ctx, interval, check)
		if status != last {
			logger.Info().Str("service", service).Str("status", status.String()).Msg("health status changed")
			last = status
		}
		healthServer.SetServingStatus("", status)
		healthServer.SetServingStatus(service, status)

		select {
		case <-ctx.Done():
			healthServer.Shutdown()
			return
		case <-ticker.C:
		}
	}
}

func probe(ctx context.Context, timeout time.Duration, check HealthCheckFunc) grpc_health_v1.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := check(ctx); err != nil {
		return grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}

	return grpc_health_v1.HealthCheckResponse_SERVING
}
