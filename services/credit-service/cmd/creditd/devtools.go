package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crisgp1/cliquealo.mx-sub002/pkg/auth"
	"github.com/crisgp1/cliquealo.mx-sub002/pkg/tlsutil"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/infrastructure/config"
)

func newGenCertsCmd() *cobra.Command {
	var (
		outDir string
		hosts  []string
	)
	cmd := &cobra.Command{
		Use:   "gen-certs",
		Short: "Write a development CA and server certificate",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := tlsutil.GenerateSelfSignedCert(hosts, outDir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s and %s to %s\n", tlsutil.ServerFile, tlsutil.ServerKeyFile, outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "certs", "output directory")
	cmd.Flags().StringSliceVar(&hosts, "host", []string{"localhost", "127.0.0.1"}, "DNS names or IPs for the server certificate")
	return cmd
}

func newTokenCmd() *cobra.Command {
	var (
		userID string
		email  string
		roles  []string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token with the configured signing key",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := newJWTService(config.Load().JWT)
			if err != nil {
				return err
			}
			token, err := svc.GenerateToken(userID, email, roles)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "subject user id")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringSliceVar(&roles, "role", []string{auth.RoleUser}, "roles to grant")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
