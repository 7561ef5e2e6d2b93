package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/crisgp1/cliquealo.mx-sub002/pkg/tlsutil"
	grpcPresentation "github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/presentation/grpc"
)

// newHealthcheckCmd queries the gRPC health service, for container probes.
func newHealthcheckCmd() *cobra.Command {
	var (
		addr       string
		caFile     string
		useTLS     bool
		skipVerify bool
		timeout    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Exit non-zero unless the gRPC credit service reports SERVING",
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds := insecure.NewCredentials()
			if useTLS || caFile != "" {
				tlsCreds, err := tlsutil.ClientCredentials(caFile, skipVerify)
				if err != nil {
					return err
				}
				creds = tlsCreds
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			status, err := checkHealth(ctx, addr, creds)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), status)
			if status != healthpb.HealthCheckResponse_SERVING {
				return fmt.Errorf("credit service is %s", status)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:9090", "gRPC address")
	cmd.Flags().BoolVar(&useTLS, "tls", false, "connect with TLS using the system roots")
	cmd.Flags().StringVar(&caFile, "tls-ca", "", "CA certificate to trust (implies --tls)")
	cmd.Flags().BoolVar(&skipVerify, "tls-skip-verify", false, "skip server certificate verification")
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "deadline for the check")
	return cmd
}

func checkHealth(ctx context.Context, addr string, creds credentials.TransportCredentials) (healthpb.HealthCheckResponse_ServingStatus, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(creds))
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: grpcPresentation.ServiceName})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, fmt.Errorf("health check %s: %w", addr, err)
	}
	return resp.GetStatus(), nil
}
