// Package grpc exposes the standard grpc.health.v1 service so orchestrators
// can probe the server. The reported status follows the record store.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/foodlog/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// DefaultPingInterval is how often the record store is probed.
const DefaultPingInterval = 10 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthServer serves grpc.health.v1 and tracks record store health.
type HealthServer struct {
	address  string
	db       Pinger
	interval time.Duration
	health   *health.Server
	logger   logging.Logger
}

// NewHealthServer constructs a HealthServer probing db every interval.
func NewHealthServer(address string, db Pinger, interval time.Duration, l logging.Logger) *HealthServer {
	if interval <= 0 {
		interval = DefaultPingInterval
	}
	return &HealthServer{
		address:  address,
		db:       db,
		interval: interval,
		health:   health.NewServer(),
		logger:   l.With("module", "grpc_server"),
	}
}

// Run listens on the configured address until ctx is cancelled.
func (s *HealthServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)
	return s.serve(ctx, listen)
}

func (s *HealthServer) serve(ctx context.Context, listen net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	s.probe(ctx)
	go s.watch(ctx)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gPRC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}

func (s *HealthServer) watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.probe(ctx)
		}
	}
}

// probe sets the overall status ("" service) from one store ping.
func (s *HealthServer) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.db.PingContext(pingCtx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn(ctx, "record store ping failed", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
}
