package main

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/crisgp1/cliquealo.mx-sub002/pkg/auth"
	"github.com/crisgp1/cliquealo.mx-sub002/pkg/tlsutil"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/infrastructure/config"
	grpcPresentation "github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/presentation/grpc"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "migrate", "gen-certs", "token", "healthcheck"})
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("JWT_SECRET", "dev-secret")
	t.Setenv("JWT_ISSUER", "cliquealo")

	out, err := run(t, "token", "--user", "admin-1", "--role", "admin,superadmin")
	require.NoError(t, err)

	svc, err := newJWTService(config.Load().JWT)
	require.NoError(t, err)
	claims, err := svc.ValidateToken(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.True(t, claims.HasRole(auth.RoleSuperAdmin))
}

func TestTokenCmd_RequiresUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "dev-secret")
	_, err := run(t, "token")
	assert.Error(t, err)
}

func TestGenCertsCmd(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "gen-certs", "--out", dir, "--host", "localhost")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, tlsutil.ServerFile))
	assert.NoError(t, err)
	_, err = tlsutil.ServerConfig(filepath.Join(dir, tlsutil.ServerFile), filepath.Join(dir, tlsutil.ServerKeyFile))
	assert.NoError(t, err)
}

func TestNewJWTService_MissingKeyFile(t *testing.T) {
	_, err := newJWTService(config.JWTConfig{PublicKeyFile: filepath.Join(t.TempDir(), "missing.pem")})
	assert.Error(t, err)
}

func startHealthServer(t *testing.T, status healthpb.HealthCheckResponse_ServingStatus, opts ...grpc.ServerOption) string {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := grpc.NewServer(opts...)
	hs := health.NewServer()
	hs.SetServingStatus(grpcPresentation.ServiceName, status)
	healthpb.RegisterHealthServer(srv, hs)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	return lis.Addr().String()
}

func TestHealthcheckCmd(t *testing.T) {
	t.Run("serving", func(t *testing.T) {
		addr := startHealthServer(t, healthpb.HealthCheckResponse_SERVING)
		out, err := run(t, "healthcheck", "--addr", addr)
		require.NoError(t, err)
		assert.Contains(t, out, "SERVING")
	})

	t.Run("not serving", func(t *testing.T) {
		addr := startHealthServer(t, healthpb.HealthCheckResponse_NOT_SERVING)
		_, err := run(t, "healthcheck", "--addr", addr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "NOT_SERVING")
	})

	t.Run("tls with dev ca", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, tlsutil.GenerateSelfSignedCert([]string{"localhost", "127.0.0.1"}, dir))
		creds, err := tlsutil.ServerCredentials(filepath.Join(dir, tlsutil.ServerFile), filepath.Join(dir, tlsutil.ServerKeyFile))
		require.NoError(t, err)

		addr := startHealthServer(t, healthpb.HealthCheckResponse_SERVING, grpc.Creds(creds))
		out, err := run(t, "healthcheck", "--addr", addr, "--tls-ca", filepath.Join(dir, tlsutil.CAFile))
		require.NoError(t, err)
		assert.Contains(t, out, "SERVING")
	})

	t.Run("unreadable ca", func(t *testing.T) {
		_, err := run(t, "healthcheck", "--tls-ca", filepath.Join(t.TempDir(), "missing.pem"))
		assert.Error(t, err)
	})
}
