package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/crisgp1/cliquealo.mx-sub002/pkg/auth"
	"github.com/crisgp1/cliquealo.mx-sub002/pkg/tlsutil"
)

// ServerOptions configures transport security and debugging aids.
type ServerOptions struct {
	CertFile   string
	KeyFile    string
	Reflection bool
}

// Server wraps a gRPC server with the credit handler registered.
type Server struct {
	gs     *grpc.Server
	health *health.Server
	logger *slog.Logger
}

// RolePolicy lists the methods restricted to back-office staff.
func RolePolicy() map[string][]string {
	staff := []string{auth.RoleAdmin, auth.RoleSuperAdmin}
	return map[string][]string{
		MethodListApplicationsByStatus: staff,
		MethodStartReview:              staff,
		MethodApproveApplication:       staff,
		MethodRejectApplication:        staff,
		MethodCreateLender:             staff,
		MethodUpdateLender:             staff,
		MethodSetLenderActive:          staff,
		MethodListLenders:              staff,
	}
}

// NewServer creates and configures the gRPC server. Every method except the
// health service requires a valid bearer token.
func NewServer(handler CreditServiceServer, jwtService *auth.JWTService, opts ServerOptions, logger *slog.Logger) (*Server, error) {
	authInterceptor := auth.UnaryAuthInterceptor(jwtService, []string{
		"/grpc.health.v1.Health/Check",
		"/grpc.health.v1.Health/Watch",
	})

	serverOpts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			loggingInterceptor(logger),
			authInterceptor,
			auth.MethodRoles(RolePolicy()),
		),
	}

	if opts.CertFile != "" && opts.KeyFile != "" {
		creds, err := tlsutil.ServerCredentials(opts.CertFile, opts.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("load gRPC TLS credentials: %w", err)
		}
		serverOpts = append(serverOpts, grpc.Creds(creds))
		logger.Info("gRPC TLS enabled", "cert", opts.CertFile)
	} else {
		logger.Info("gRPC TLS not configured, running without TLS")
	}

	gs := grpc.NewServer(serverOpts...)

	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(gs, healthSrv)
	healthSrv.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	if opts.Reflection {
		reflection.Register(gs)
	}

	RegisterCreditServiceServer(gs, handler)

	return &Server{gs: gs, health: healthSrv, logger: logger}, nil
}

// Serve starts the gRPC server on the specified address.
func (s *Server) Serve(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.ServeListener(lis)
}

// ServeListener serves on an existing listener.
func (s *Server) ServeListener(lis net.Listener) error {
	s.logger.Info("gRPC server listening", "addr", lis.Addr().String())
	return s.gs.Serve(lis)
}

// GracefulStop marks the service as not serving and drains in-flight calls.
func (s *Server) GracefulStop() {
	s.logger.Info("gRPC server shutting down")
	s.health.Shutdown()
	s.gs.GracefulStop()
}

func loggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.InfoContext(ctx, "grpc request",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return resp, err
	}
}
