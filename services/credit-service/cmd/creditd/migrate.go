package main

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgpostgres "github.com/crisgp1/cliquealo.mx-sub002/pkg/postgres"
	"github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/internal/infrastructure/config"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the credit database schema",
	}

	var dir string
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "migrations directory (defaults to MIGRATIONS_DIR)")

	resolve := func() (dsn, migrations string) {
		cfg := config.Load()
		if dir != "" {
			return cfg.DB.DSN(), dir
		}
		return cfg.DB.DSN(), cfg.MigrationsDir
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				dsn, migrations := resolve()
				if err := pkgpostgres.RunMigrations(dsn, migrations); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			RunE: func(cmd *cobra.Command, _ []string) error {
				dsn, migrations := resolve()
				if err := pkgpostgres.RunMigrationsDown(dsn, migrations); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: func(cmd *cobra.Command, _ []string) error {
				dsn, migrations := resolve()
				version, dirty, err := pkgpostgres.MigrationVersion(dsn, migrations)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return nil
			},
		},
	)
	return cmd
}
