// Package health serves the standard gRPC health service, driven by a
// periodic ping of the store.
package health

import (
	"context"
	"log/slog"
	"net"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"clinic-api/internal/middleware"
)

// Service is the name reported alongside the overall ("") status.
const Service = "clinic.v1.Clinic"

type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	grpc    *grpc.Server
	health  *health.Server
	db      Pinger
	log     *slog.Logger
	every   time.Duration
	serving atomic.Bool
}

func New(db Pinger, every time.Duration, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		grpc:   grpc.NewServer(grpc.ChainUnaryInterceptor(middleware.UnaryLog(log))),
		health: health.NewServer(),
		db:     db,
		log:    log,
		every:  every,
	}
	healthpb.RegisterHealthServer(s.grpc, s.health)
	reflection.Register(s.grpc)
	s.set(false)
	return s
}

// Serving reports the result of the last probe.
func (s *Server) Serving() bool { return s.serving.Load() }

// Probe pings the store once and publishes the result.
func (s *Server) Probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.every)
	defer cancel()
	err := s.db.Ping(ctx)
	if err != nil && s.Serving() {
		s.log.WarnContext(ctx, "store unreachable", "err", err)
	} else if err == nil && !s.Serving() {
		s.log.InfoContext(ctx, "store reachable")
	}
	s.set(err == nil)
}

func (s *Server) set(ok bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.serving.Store(ok)
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(Service, st)
}

// Run probes immediately and then every interval until ctx is done.
func (s *Server) Run(ctx context.Context) {
	s.Probe(ctx)
	t := time.NewTicker(s.every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Probe(ctx)
		}
	}
}

func (s *Server) Serve(lis net.Listener) error {
	return s.grpc.Serve(lis)
}

// Stop marks every service NOT_SERVING and drains in-flight calls.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
